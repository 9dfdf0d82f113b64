package routes

import (
	"net/http"
	"time"

	"signup/handlers"
	"signup/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterWizardRoutes registers the signup wizard step endpoints.
func RegisterWizardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	steps := r.Group("")
	{
		steps.Use(middleware.SessionKeyMiddleware())
		steps.GET(handlers.StepOnePath, hb.StepOneHandler)
		steps.POST(handlers.StepOnePath, hb.SubmitPersonalInfoHandler)
		steps.GET(handlers.StepTwoPath, hb.StepTwoHandler)
		steps.POST(handlers.StepTwoPath, hb.SubmitPlanHandler)
		steps.GET(handlers.StepThreePath, hb.StepThreeHandler)
		steps.POST(handlers.StepThreePath, hb.SubmitAddOnsHandler)
		steps.GET(handlers.StepFourPath, hb.StepFourHandler)
		steps.POST(handlers.StepFourPath, hb.CompleteWizardHandler)
		steps.GET(handlers.ConfirmationPath, hb.ConfirmationHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "signup wizard is up"})
	})
}

// RegisterRoutes wires middleware and all endpoint groups onto the router.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterWizardRoutes(r, hb)
	RegisterHealthRoute(r)
}
