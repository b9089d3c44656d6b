package route_recsys

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/echofinder/recommendation-engine/api/controller/controller_recsys"
	"github.com/echofinder/recommendation-engine/domain"
	"github.com/echofinder/recommendation-engine/mongo"
	"github.com/echofinder/recommendation-engine/repository/repository_recsys"
	"github.com/echofinder/recommendation-engine/usecase/usecase_recsys"
)

func NewRecommendRouter(
	timeout time.Duration,
	db mongo.Database,
	logger zerolog.Logger,
	group *gin.RouterGroup,
) {
	// 初始化repository
	trackRepo := repository_recsys.NewTrackRepository(db, domain.CollectionTrackDetails)
	embeddingRepo := repository_recsys.NewEmbeddingRepository(db, domain.CollectionSongEmbeddings)
	signalsRepo := repository_recsys.NewUserSignalsRepository(
		db,
		domain.CollectionUserFavGenres,
		domain.CollectionUserFavArtists,
		domain.CollectionUserSongInteractions,
	)

	// 初始化usecase
	aggregator := usecase_recsys.NewPreferenceAggregator(trackRepo, embeddingRepo)
	recommendUsecase := usecase_recsys.NewRecommendUsecase(trackRepo, embeddingRepo, signalsRepo, aggregator, logger, timeout)

	// 初始化controller
	recommendCtrl := controller_recsys.NewRecommendController(recommendUsecase)

	// 注册路由
	userGroup := group.Group("/user")
	{
		// GET /user/recommendSongs?user_id=xxx
		userGroup.GET("/recommendSongs", recommendCtrl.GetRecommendations)
	}
}
