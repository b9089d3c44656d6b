package controller_recsys

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/echofinder/recommendation-engine/mongo"
)

type HealthController struct {
	Client mongo.Client
}

func NewHealthController(client mongo.Client) *HealthController {
	return &HealthController{
		Client: client,
	}
}

// HealthCheck GET /healthCheck
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	if err := c.Client.Ping(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"health": "degraded", "mongo": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"health": "ok"})
}
