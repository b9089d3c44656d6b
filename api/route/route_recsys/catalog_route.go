package route_recsys

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/echofinder/recommendation-engine/api/controller/controller_recsys"
	"github.com/echofinder/recommendation-engine/bootstrap"
	"github.com/echofinder/recommendation-engine/domain"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_interface"
	"github.com/echofinder/recommendation-engine/mongo"
	"github.com/echofinder/recommendation-engine/repository/repository_enrich"
	"github.com/echofinder/recommendation-engine/repository/repository_recsys"
	"github.com/echofinder/recommendation-engine/usecase/usecase_ingest"
	"github.com/echofinder/recommendation-engine/usecase/usecase_recsys"
)

func NewCatalogRouter(
	env *bootstrap.Env,
	timeout time.Duration,
	db mongo.Database,
	logger zerolog.Logger,
	group *gin.RouterGroup,
) {
	// 初始化repository
	trackRepo := repository_recsys.NewTrackRepository(db, domain.CollectionTrackDetails)

	// Spotify凭证未配置时跳过热度补全
	var popularity recsys_interface.PlatformPopularitySource
	if env.SpotifyClientID != "" && env.SpotifyClientSecret != "" {
		source, err := repository_enrich.NewSpotifyPopularitySource(
			context.Background(), env.SpotifyClientID, env.SpotifyClientSecret,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("spotify popularity source unavailable")
		} else {
			popularity = source
		}
	}

	// 初始化usecase
	normalizer := usecase_recsys.NewFeatureNormalizer(trackRepo)
	importUsecase := usecase_ingest.NewCatalogImportUsecase(trackRepo, popularity, normalizer, logger, timeout)

	// 初始化controller
	catalogCtrl := controller_recsys.NewCatalogController(importUsecase, env.CatalogCSVPath)

	// 注册路由
	trackGroup := group.Group("/tracks")
	{
		// POST /tracks/updateDb[?path=xxx]
		trackGroup.POST("/updateDb", catalogCtrl.UpdateTracks)
	}
}
