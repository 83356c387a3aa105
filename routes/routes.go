package routes

import (
	"net/http"

	"nutriplan/controllers"
	"nutriplan/middlewares"
	"nutriplan/services"

	"github.com/gin-gonic/gin"
)

// Deps carries the services the router exposes. Push may be nil when SNS is
// not configured; the device routes are then not registered.
type Deps struct {
	JWTSecret []byte
	Auth      *services.AuthService
	Users     *services.UserService
	Goals     *services.GoalService
	Foods     *services.FoodService
	Recipes   *services.RecipeService
	MealPlans *services.MealPlanService
	Analytics *services.AnalyticsService
	Realtime  *services.RealtimeHub
	Push      *services.PushService
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	authCtl := controllers.NewAuthController(d.Auth)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
	}

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware(d.JWTSecret))

	userCtl := controllers.NewUserController(d.Users)
	api.GET("/user/profile", userCtl.GetProfile)
	api.PUT("/user/profile", userCtl.UpdateProfile)

	goalCtl := controllers.NewGoalController(d.Goals)
	api.GET("/goals", goalCtl.Get)
	api.PUT("/goals", goalCtl.Update)

	foodCtl := controllers.NewFoodController(d.Foods)
	foods := api.Group("/foods")
	{
		foods.GET("", foodCtl.Search)
		foods.POST("", foodCtl.Create)
		foods.POST("/recognize", foodCtl.Recognize)
		foods.POST("/import", foodCtl.Import)
	}

	recipeCtl := controllers.NewRecipeController(d.Recipes)
	recipes := api.Group("/recipes")
	{
		recipes.GET("", recipeCtl.List)
		recipes.POST("", recipeCtl.Create)
		recipes.GET("/:id", recipeCtl.Get)
		recipes.GET("/:id/nutrition", recipeCtl.Nutrition)
	}

	planCtl := controllers.NewMealPlanController(d.MealPlans)
	plans := api.Group("/meal-plans")
	{
		plans.GET("", planCtl.List)
		plans.POST("", planCtl.Create)
		plans.GET("/day", planCtl.Day)
		plans.GET("/week", planCtl.Week)
		plans.POST("/:id/email", planCtl.Email)
	}

	analyticsCtl := controllers.NewAnalyticsController(d.Analytics)
	api.GET("/analytics/daily", analyticsCtl.Daily)

	if d.Realtime != nil {
		rtCtl := controllers.NewRealtimeController(d.Realtime)
		api.GET("/ws/events", rtCtl.EventsWS)
	}

	if d.Push != nil {
		devCtl := controllers.NewDeviceController(d.Push)
		api.POST("/devices", devCtl.Register)
		api.POST("/devices/notifications", devCtl.Toggle)
	}

	return r
}
