package controllers

import (
	"net/http"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// GET /goals
func GetGoals(c *gin.Context) {
	uid := c.GetUint("userID")

	goal, err := services.GetGoal(uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// PUT /goals
func UpdateGoals(c *gin.Context) {
	uid := c.GetUint("userID")

	var req struct {
		Calories     float64 `json:"calories"`
		Protein      float64 `json:"protein"`
		Carbs        float64 `json:"carbs"`
		Fat          float64 `json:"fat"`
		ShowCalories *bool   `json:"show_calories"`
		ShowProtein  *bool   `json:"show_protein"`
		ShowCarbs    *bool   `json:"show_carbs"`
		ShowFat      *bool   `json:"show_fat"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// flags default to shown when omitted
	target := models.VisibleProfile(req.Calories, req.Protein, req.Carbs, req.Fat)
	if req.ShowCalories != nil {
		target.ShowCalories = *req.ShowCalories
	}
	if req.ShowProtein != nil {
		target.ShowProtein = *req.ShowProtein
	}
	if req.ShowCarbs != nil {
		target.ShowCarbs = *req.ShowCarbs
	}
	if req.ShowFat != nil {
		target.ShowFat = *req.ShowFat
	}

	goal, err := services.UpsertGoal(uid, target)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}
