package handler

import (
	"context"
	"net/http"
	"time"

	"edufleex-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Checker 依赖健康检查函数
type Checker func(ctx context.Context) error

type HealthHandler struct {
	name     string
	version  string
	checkers map[string]Checker
}

func NewHealthHandler(name, version string, checkers map[string]Checker) *HealthHandler {
	return &HealthHandler{name: name, version: version, checkers: checkers}
}

// Root 服务信息
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to " + h.name,
		"version": h.version,
		"docs":    "/swagger/index.html",
	})
}

// Health 健康检查，任一依赖失败返回 503
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checkers))
	for name, check := range h.checkers {
		if err := check(ctx); err != nil {
			logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			deps[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "up"
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":       state,
		"service":      h.name,
		"version":      h.version,
		"dependencies": deps,
	})
}
