package controller_recsys

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/echofinder/recommendation-engine/api/controller"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_interface"
)

type EmbeddingController struct {
	EmbeddingUsecase recsys_interface.EmbeddingUsecase
	Logger           zerolog.Logger
}

func NewEmbeddingController(usecase recsys_interface.EmbeddingUsecase, logger zerolog.Logger) *EmbeddingController {
	return &EmbeddingController{
		EmbeddingUsecase: usecase,
		Logger:           logger,
	}
}

// UpdateSong POST /embeddings/update?track_id=xxx
// 重建在后台进行，接口只确认任务已调度
func (c *EmbeddingController) UpdateSong(ctx *gin.Context) {
	trackID := ctx.Query("track_id")
	if trackID == "" {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "MISSING_PARAMS", "必须提供track_id参数")
		return
	}

	go func() {
		if err := c.EmbeddingUsecase.RebuildSong(context.Background(), trackID); err != nil {
			c.Logger.Error().Err(err).Str("song_id", trackID).Msg("scheduled embedding update failed")
		}
	}()

	controller.SuccessResponse(ctx, "message", "embedding update scheduled", 1)
}

// UpdateDatabase POST /embeddings/updateDb?force_update=true
func (c *EmbeddingController) UpdateDatabase(ctx *gin.Context) {
	force := ctx.Query("force_update") == "true"

	count, err := c.EmbeddingUsecase.RebuildPending(ctx.Request.Context(), force)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "embedded", count, count)
}
