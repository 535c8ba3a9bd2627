package routes

import (
	"log"

	"backend/config"
	"backend/controllers"
	"backend/middlewares"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	hub := services.NewRealtimeHub()

	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Fatalf("push service init failed: %v", err)
	}
	vision := services.NewVisionService()

	notifier := services.NewNotificationService(config.DB, hub, push)
	ingredients := services.NewIngredientService(notifier)
	templates := services.NewMealTemplateService(ingredients)
	plans := services.NewPlanService(config.DB, ingredients, templates, notifier)
	lookup := services.NewFoodLookupService()

	ingredientCtl := controllers.NewIngredientController(ingredients, lookup, vision)
	mealCtl := controllers.NewMealController(templates)
	planCtl := controllers.NewPlanController(plans, hub)
	notificationCtl := controllers.NewNotificationController(notifier)
	deviceCtl := controllers.NewDeviceController(push)
	realtimeCtl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware())
	{
		ing := protected.Group("/ingredients")
		{
			ing.GET("", ingredientCtl.List)
			ing.POST("", ingredientCtl.Create)
			ing.PATCH("/:id", ingredientCtl.Update)
			ing.DELETE("/:id", ingredientCtl.Delete)
			ing.GET("/lookup", ingredientCtl.LookupBarcode)
			ing.GET("/search", ingredientCtl.Search)
			ing.POST("/recognize", ingredientCtl.Recognize)
		}

		meals := protected.Group("/meals")
		{
			meals.GET("", mealCtl.List)
			meals.GET("/:id", mealCtl.Get)
			meals.POST("", mealCtl.Create)
			meals.PUT("/:id", mealCtl.Update)
			meals.DELETE("/:id", mealCtl.Delete)
		}

		plan := protected.Group("/plan/:week")
		{
			plan.GET("", planCtl.GetWeek)
			plan.POST("/email-summary", planCtl.EmailSummary)
			plan.GET("/days/:day/summary", planCtl.DaySummary)

			slot := plan.Group("/days/:day/slots/:mealType")
			{
				slot.PUT("", planCtl.AssignSlot)
				slot.DELETE("", planCtl.ClearSlot)
				slot.POST("/ingredients", planCtl.AddIngredient)
				slot.PUT("/ingredients/:index", planCtl.SwapIngredient)
				slot.PUT("/ingredients/:index/grams", planCtl.SetServedGrams)
				slot.DELETE("/ingredients/:index", planCtl.RemoveIngredient)
				slot.PUT("/accompaniments", planCtl.SetAccompaniments)
			}
		}

		protected.GET("/goals", controllers.GetGoals)
		protected.PUT("/goals", controllers.UpdateGoals)

		protected.GET("/notifications", notificationCtl.List)
		protected.DELETE("/notifications/:id", notificationCtl.Dismiss)

		protected.POST("/devices", deviceCtl.Register)
		protected.POST("/uploads/meal-photo", controllers.UploadMealPhoto)

		protected.GET("/ws", realtimeCtl.EventsWS)
	}

	return r
}
