package handlers

import (
	"net/http"

	"github.com/SscSPs/finance_planner/internal/platform/config"
	"github.com/gin-gonic/gin"
)

type homeHandler struct {
	appName      string
	version      string
	isProduction bool
}

func registerHomeRoutes(r *gin.Engine, cfg *config.Config) {
	h := &homeHandler{appName: cfg.AppName, version: cfg.AppVersion, isProduction: cfg.IsProduction}
	r.GET("/", h.getHome)
	r.GET("/health", h.getHealth)
}

// getHome godoc
// @Summary Show the status of server.
// @Description get the name, version and documentation location of the API.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *homeHandler) getHome(c *gin.Context) {
	docs := "/swagger/index.html"
	if h.isProduction {
		docs = "Documentation disabled in production"
	}
	c.JSON(http.StatusOK, gin.H{"message": h.appName, "version": h.version, "docs": docs})
}

// getHealth godoc
// @Summary Health check
// @Tags root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *homeHandler) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": h.version})
}
