package route_recsys

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/echofinder/recommendation-engine/api/controller/controller_recsys"
	"github.com/echofinder/recommendation-engine/bootstrap"
	"github.com/echofinder/recommendation-engine/domain"
	"github.com/echofinder/recommendation-engine/mongo"
	"github.com/echofinder/recommendation-engine/repository/repository_encoder"
	"github.com/echofinder/recommendation-engine/repository/repository_recsys"
	"github.com/echofinder/recommendation-engine/usecase/usecase_recsys"
)

func NewEmbeddingRouter(
	env *bootstrap.Env,
	timeout time.Duration,
	db mongo.Database,
	logger zerolog.Logger,
	group *gin.RouterGroup,
) {
	// 初始化repository
	trackRepo := repository_recsys.NewTrackRepository(db, domain.CollectionTrackDetails)
	embeddingRepo := repository_recsys.NewEmbeddingRepository(db, domain.CollectionSongEmbeddings)
	encoder := repository_encoder.NewTextEncoder(
		env.EncoderBaseURL,
		time.Duration(env.EncoderTimeout)*time.Second,
		env.EncoderRPS,
	)

	// 初始化usecase
	normalizer := usecase_recsys.NewFeatureNormalizer(trackRepo)
	embeddingUsecase := usecase_recsys.NewEmbeddingUsecase(trackRepo, embeddingRepo, encoder, normalizer, logger, timeout)

	// 初始化controller
	embeddingCtrl := controller_recsys.NewEmbeddingController(embeddingUsecase, logger)

	// 注册路由
	embeddingGroup := group.Group("/embeddings")
	{
		// POST /embeddings/update?track_id=xxx
		embeddingGroup.POST("/update", embeddingCtrl.UpdateSong)

		// POST /embeddings/updateDb?force_update=true
		embeddingGroup.POST("/updateDb", embeddingCtrl.UpdateDatabase)
	}
}
