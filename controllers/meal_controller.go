package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Svc *services.MealTemplateService
}

func NewMealController(svc *services.MealTemplateService) *MealController {
	return &MealController{Svc: svc}
}

// GET /meals
func (mc *MealController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	out, err := mc.Svc.List(uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /meals/:id
func (mc *MealController) Get(c *gin.Context) {
	uid := c.GetUint("userID")

	tmpl, err := mc.Svc.ResolveTemplate(uid, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

type mealBody struct {
	Name        string                         `json:"name" binding:"required"`
	Recipe      string                         `json:"recipe"`
	PrepMinutes int                            `json:"prep_minutes"`
	Difficulty  string                         `json:"difficulty"`
	ImageURL    string                         `json:"image_url"`
	Items       []services.TemplateItemRequest `json:"items"`
}

func (b mealBody) toInput() services.TemplateInput {
	return services.TemplateInput{
		Name:        b.Name,
		Recipe:      b.Recipe,
		PrepMinutes: b.PrepMinutes,
		Difficulty:  b.Difficulty,
		ImageURL:    b.ImageURL,
		Items:       b.Items,
	}
}

// POST /meals
func (mc *MealController) Create(c *gin.Context) {
	uid := c.GetUint("userID")

	var body mealBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tmpl, err := mc.Svc.Create(uid, body.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tmpl)
}

// PUT /meals/:id — editing a library meal saves a personal copy instead.
func (mc *MealController) Update(c *gin.Context) {
	uid := c.GetUint("userID")

	var body mealBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tmpl, err := mc.Svc.Update(uid, c.Param("id"), body.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

// DELETE /meals/:id
func (mc *MealController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")

	if err := mc.Svc.Delete(uid, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
