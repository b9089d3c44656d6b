package route

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/echofinder/recommendation-engine/api/controller/controller_recsys"
	"github.com/echofinder/recommendation-engine/api/route/route_recsys"
	"github.com/echofinder/recommendation-engine/bootstrap"
	"github.com/echofinder/recommendation-engine/mongo"
)

func Setup(
	env *bootstrap.Env,
	timeout time.Duration,
	client mongo.Client,
	logger zerolog.Logger,
	engine *gin.Engine,
) {
	db := client.Database(env.DBName)

	healthCtrl := controller_recsys.NewHealthController(client)
	engine.GET("/healthCheck", healthCtrl.HealthCheck)

	group := engine.Group("")
	route_recsys.NewRecommendRouter(timeout, db, logger, group)
	route_recsys.NewEmbeddingRouter(env, timeout, db, logger, group)
	route_recsys.NewCatalogRouter(env, timeout, db, logger, group)
}
