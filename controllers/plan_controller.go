package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"backend/config"
	"backend/models"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type PlanController struct {
	Plans *services.PlanService
	Hub   *services.RealtimeHub
}

func NewPlanController(plans *services.PlanService, hub *services.RealtimeHub) *PlanController {
	return &PlanController{Plans: plans, Hub: hub}
}

func (pc *PlanController) broadcastUpdate(uid uint, week, day, mealType string) {
	if pc.Hub == nil {
		return
	}
	pc.Hub.Broadcast(uid, map[string]any{
		"kind":      "plan.updated",
		"week":      week,
		"day":       day,
		"meal_type": mealType,
	})
}

// GET /plan/:week
func (pc *PlanController) GetWeek(c *gin.Context) {
	uid := c.GetUint("userID")

	plan, err := pc.Plans.GetPlan(uid, c.Param("week"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// PUT /plan/:week/days/:day/slots/:mealType  { "template_id": "..." }
// Assigning over a filled slot is the shuffle: the chosen meal's
// definition replaces the slot wholesale.
func (pc *PlanController) AssignSlot(c *gin.Context) {
	uid := c.GetUint("userID")

	var body struct {
		TemplateID string `json:"template_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	week, day, mealType := c.Param("week"), c.Param("day"), c.Param("mealType")
	meal, err := pc.Plans.AssignSlot(uid, week, day, mealType, body.TemplateID)
	if err != nil {
		respondError(c, err)
		return
	}
	pc.broadcastUpdate(uid, week, day, mealType)
	c.JSON(http.StatusOK, meal)
}

// DELETE /plan/:week/days/:day/slots/:mealType
func (pc *PlanController) ClearSlot(c *gin.Context) {
	uid := c.GetUint("userID")

	week, day, mealType := c.Param("week"), c.Param("day"), c.Param("mealType")
	if err := pc.Plans.ClearSlot(uid, week, day, mealType); err != nil {
		respondError(c, err)
		return
	}
	pc.broadcastUpdate(uid, week, day, mealType)
	c.Status(http.StatusNoContent)
}

func slotIndex(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient index"})
		return 0, false
	}
	return idx, true
}

// PUT /plan/:week/days/:day/slots/:mealType/ingredients/:index/grams  { "grams": 150 }
func (pc *PlanController) SetServedGrams(c *gin.Context) {
	uid := c.GetUint("userID")

	idx, ok := slotIndex(c)
	if !ok {
		return
	}
	var body struct {
		Grams float64 `json:"grams" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	week, day, mealType := c.Param("week"), c.Param("day"), c.Param("mealType")
	meal, err := pc.Plans.SetServedGrams(uid, week, day, mealType, idx, body.Grams)
	if err != nil {
		respondError(c, err)
		return
	}
	pc.broadcastUpdate(uid, week, day, mealType)
	c.JSON(http.StatusOK, meal)
}

// PUT /plan/:week/days/:day/slots/:mealType/ingredients/:index
// { "ingredient_id": "...", "grams": 120 }  — grams optional, the prior
// serving weight is held when omitted.
func (pc *PlanController) SwapIngredient(c *gin.Context) {
	uid := c.GetUint("userID")

	idx, ok := slotIndex(c)
	if !ok {
		return
	}
	var body struct {
		IngredientID string   `json:"ingredient_id" binding:"required"`
		Grams        *float64 `json:"grams"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	week, day, mealType := c.Param("week"), c.Param("day"), c.Param("mealType")
	meal, err := pc.Plans.SwapIngredient(uid, week, day, mealType, idx, body.IngredientID, body.Grams)
	if err != nil {
		respondError(c, err)
		return
	}
	pc.broadcastUpdate(uid, week, day, mealType)
	c.JSON(http.StatusOK, meal)
}

// POST /plan/:week/days/:day/slots/:mealType/ingredients
func (pc *PlanController) AddIngredient(c *gin.Context) {
	uid := c.GetUint("userID")

	var body struct {
		IngredientID string   `json:"ingredient_id" binding:"required"`
		Grams        *float64 `json:"grams"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	week, day, mealType := c.Param("week"), c.Param("day"), c.Param("mealType")
	meal, err := pc.Plans.AddIngredient(uid, week, day, mealType, body.IngredientID, body.Grams)
	if err != nil {
		respondError(c, err)
		return
	}
	pc.broadcastUpdate(uid, week, day, mealType)
	c.JSON(http.StatusOK, meal)
}

// DELETE /plan/:week/days/:day/slots/:mealType/ingredients/:index
func (pc *PlanController) RemoveIngredient(c *gin.Context) {
	uid := c.GetUint("userID")

	idx, ok := slotIndex(c)
	if !ok {
		return
	}

	week, day, mealType := c.Param("week"), c.Param("day"), c.Param("mealType")
	meal, err := pc.Plans.RemoveIngredient(uid, week, day, mealType, idx)
	if err != nil {
		respondError(c, err)
		return
	}
	pc.broadcastUpdate(uid, week, day, mealType)
	c.JSON(http.StatusOK, meal)
}

// PUT /plan/:week/days/:day/slots/:mealType/accompaniments
func (pc *PlanController) SetAccompaniments(c *gin.Context) {
	uid := c.GetUint("userID")

	var body struct {
		Items []models.Accompaniment `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	week, day, mealType := c.Param("week"), c.Param("day"), c.Param("mealType")
	if err := pc.Plans.SetAccompaniments(uid, week, day, mealType, body.Items); err != nil {
		respondError(c, err)
		return
	}
	pc.broadcastUpdate(uid, week, day, mealType)
	c.Status(http.StatusNoContent)
}

// GET /plan/:week/days/:day/summary
func (pc *PlanController) DaySummary(c *gin.Context) {
	uid := c.GetUint("userID")

	goal, err := services.GetGoal(uid)
	if err != nil {
		respondError(c, err)
		return
	}
	sum, err := pc.Plans.SummarizeDay(uid, c.Param("week"), c.Param("day"), goal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// POST /plan/:week/email-summary
func (pc *PlanController) EmailSummary(c *gin.Context) {
	uid := c.GetUint("userID")

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	week := c.Param("week")
	plan, err := pc.Plans.GetPlan(uid, week)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := utils.SendPlanSummaryEmail(user.Email, week, renderPlanSummary(plan)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "summary sent"})
}

func renderPlanSummary(plan *models.StoredPlan) string {
	var b strings.Builder
	for _, day := range models.DayLabels {
		total := services.DayTotal(plan, day)
		fmt.Fprintf(&b, "%s (%.0f kcal)\n", day, total.Calories)
		for _, mt := range plan.MealTypes {
			meal := plan.Days[day][mt]
			if meal == nil {
				continue
			}
			fmt.Fprintf(&b, "  %s: %s (%.0f kcal, %.1fg protein)\n",
				mt, meal.Name, meal.Profile.Calories, meal.Profile.Protein)
		}
		b.WriteString("\n")
	}
	return b.String()
}
