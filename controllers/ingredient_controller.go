package controllers

import (
	"net/http"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type IngredientController struct {
	Svc    *services.IngredientService
	Lookup *services.FoodLookupService
	Vision *services.VisionService
}

func NewIngredientController(svc *services.IngredientService, lookup *services.FoodLookupService, vision *services.VisionService) *IngredientController {
	return &IngredientController{Svc: svc, Lookup: lookup, Vision: vision}
}

// GET /ingredients
func (ic *IngredientController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	out, err := ic.Svc.List(uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type ingredientBody struct {
	Name           string  `json:"name" binding:"required"`
	ReferenceGrams float64 `json:"reference_grams" binding:"required"`
	Calories       float64 `json:"calories"`
	Protein        float64 `json:"protein"`
	Carbs          float64 `json:"carbs"`
	Fat            float64 `json:"fat"`
	ImageURL       string  `json:"image_url"`
}

// POST /ingredients
func (ic *IngredientController) Create(c *gin.Context) {
	uid := c.GetUint("userID")

	var body ingredientBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ing, err := ic.Svc.Create(uid, services.CreateIngredientInput{
		Name:           body.Name,
		ReferenceGrams: body.ReferenceGrams,
		Profile:        models.VisibleProfile(body.Calories, body.Protein, body.Carbs, body.Fat),
		ImageURL:       body.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ing)
}

type ingredientPatch struct {
	Name           *string                 `json:"name"`
	ReferenceGrams *float64                `json:"reference_grams"`
	Profile        *models.NutrientProfile `json:"profile"`
	ImageURL       *string                 `json:"image_url"`
}

// PATCH /ingredients/:id
func (ic *IngredientController) Update(c *gin.Context) {
	uid := c.GetUint("userID")

	var body ingredientPatch
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ing, err := ic.Svc.Update(uid, c.Param("id"), services.UpdateIngredientInput{
		Name:           body.Name,
		ReferenceGrams: body.ReferenceGrams,
		Profile:        body.Profile,
		ImageURL:       body.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

// DELETE /ingredients/:id
func (ic *IngredientController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")

	if err := ic.Svc.Delete(uid, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /ingredients/lookup?barcode=737628064502
func (ic *IngredientController) LookupBarcode(c *gin.Context) {
	barcode := c.Query("barcode")
	if barcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'barcode' query param"})
		return
	}

	candidate, err := ic.Lookup.LookupBarcode(barcode)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, candidate)
}

// GET /ingredients/search?q=oats
func (ic *IngredientController) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'q' query param"})
		return
	}

	out, err := ic.Lookup.SearchByName(q, 10)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /ingredients/recognize  { "image_base64": "data:..." }
func (ic *IngredientController) Recognize(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	labels, err := ic.Vision.RecognizeLabels(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(labels) == 0 {
		c.JSON(http.StatusOK, []services.IngredientCandidate{})
		return
	}

	out, err := ic.Lookup.SearchByName(labels[0], 5)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
