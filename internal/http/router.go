package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"grievancehub/internal/auth"
	"grievancehub/internal/db"
	"grievancehub/internal/http/middleware"
)

func NewRouter(handler *Handler, parser *auth.Parser, database *gorm.DB, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type", "Content-Disposition"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		if err := db.HealthCheck(c.Request.Context(), database); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	api.POST("/auth/register", handler.register)
	api.POST("/auth/login", handler.login)

	// Submission allows anonymous callers; a token, when present, attributes
	// the complaint to its holder.
	api.POST("/complaints", middleware.OptionalAuth(parser), handler.submitComplaint)
	api.GET("/complaints/:id", handler.getComplaint)

	authed := api.Group("")
	authed.Use(middleware.Auth(parser))
	{
		authed.GET("/users/me/complaints", handler.listMyComplaints)
		authed.POST("/complaints/:id/comments", handler.addComment)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.Auth(parser), middleware.AdminOnly())
	{
		admin.GET("/complaints", handler.listComplaints)
		admin.PUT("/complaints/:id/respond", handler.respondToComplaint)
		admin.PUT("/complaints/:id/escalate", handler.escalateComplaint)
		admin.GET("/analytics", handler.analytics)
		admin.GET("/complaints/export/csv", handler.exportCSV)
		admin.GET("/complaints/export/pdf", handler.exportPDF)
	}

	return router
}
