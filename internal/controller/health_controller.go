package controller

import (
	"context"
	"net/http"
	"school_quiz_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

// Probe 单个依赖的探活；Critical 失败时整体返回 503
type Probe struct {
	Name     string
	Critical bool
	Ping     func(ctx context.Context) error
}

type HealthController struct {
	Probes []Probe
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	probes := []Probe{{
		Name:     "database",
		Critical: true,
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}
	// Redis 只影响排名缓存，失败时降级查库
	if rdb != nil {
		probes = append(probes, Probe{
			Name: "cache",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}
	return &HealthController{Probes: probes}
}

// @Summary 健康检查
// @Description 检查数据库与缓存状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthTimeout)
	defer cancel()

	components := gin.H{"cache": "disabled"}
	healthy := true
	for _, p := range c.Probes {
		if err := p.Ping(reqCtx); err != nil {
			components[p.Name] = "down"
			if p.Critical {
				healthy = false
			}
			continue
		}
		components[p.Name] = "up"
	}

	if !healthy {
		ctx.JSON(http.StatusServiceUnavailable, util.Response{
			Code:    http.StatusServiceUnavailable,
			Message: "service unavailable",
			Data:    gin.H{"status": "degraded", "components": components},
		})
		return
	}
	util.Success(ctx, gin.H{"status": "ok", "components": components})
}
