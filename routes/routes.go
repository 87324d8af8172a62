package routes

import (
	"net/http"
	"time"

	"sessionsheet/config"
	"sessionsheet/handlers"
	"sessionsheet/middleware"
	"sessionsheet/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code, state := http.StatusOK, "ok"
		if !status.Healthy() {
			code, state = http.StatusServiceUnavailable, "degraded"
		}
		c.JSON(code, gin.H{"status": state, "dependencies": status})
	})
}

// RegisterSpreadsheetRoutes sets up the schedule and spreadsheet endpoints.
func RegisterSpreadsheetRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		if hb.AuthRequired {
			api.Use(middleware.JWTAuthMiddleware())
		}
		api.POST("/schedule/preview", hb.PreviewScheduleHandler)
		api.POST("/spreadsheets", hb.GenerateSpreadsheetHandler)
		api.POST("/spreadsheets/monthly", hb.GenerateMonthlySpreadsheetHandler)
		api.GET("/activity-logs", hb.ActivityLogsHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := config.AllowedOrigins()
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", "X-Total-Sessions", "X-Document-Count", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	RegisterHealthRoute(r)
	RegisterSpreadsheetRoutes(r, hb)
}
