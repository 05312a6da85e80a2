package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"healthassist/backend/internal/assistant"
	"healthassist/backend/internal/config"
)

type App struct {
	cfg       config.Config
	assistant *assistant.Service
}

func New(cfg config.Config, svc *assistant.Service) *App {
	return &App{cfg: cfg, assistant: svc}
}

func (a *App) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Session-Token"},
		ExposeHeaders:    []string{"Content-Length", "X-Session-Token"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", a.health)

	api := router.Group(a.cfg.APIPrefix)
	api.Use(a.sessionMiddleware())

	api.GET("/categories", a.listCategories)
	api.POST("/chat", a.chat)
	api.GET("/profile", a.getProfile)
	api.PUT("/profile", a.saveProfile)
	api.GET("/history", a.getHistory)
	api.POST("/history/clear", a.clearHistory)
	api.GET("/tips", a.healthTips)
	api.POST("/symptoms", a.analyzeSymptoms)
	api.POST("/tools/bmi", a.calculateBMI)
	api.POST("/tools/water", a.waterIntake)

	return router
}

func (a *App) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "healthassist-api",
	})
}

func writeError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"error": detail})
}

func mustJSON(c *gin.Context, payload any) bool {
	if err := c.ShouldBindJSON(payload); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}
