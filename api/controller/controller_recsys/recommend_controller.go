package controller_recsys

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/echofinder/recommendation-engine/api/controller"
	"github.com/echofinder/recommendation-engine/domain"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_interface"
)

type RecommendController struct {
	RecommendUsecase recsys_interface.RecommendUsecase
}

func NewRecommendController(usecase recsys_interface.RecommendUsecase) *RecommendController {
	return &RecommendController{
		RecommendUsecase: usecase,
	}
}

// GetRecommendations GET /user/recommendSongs?user_id=xxx
func (c *RecommendController) GetRecommendations(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	if userID == "" {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "MISSING_PARAMS", "必须提供user_id参数")
		return
	}

	recommendations, err := c.RecommendUsecase.RecommendForUser(ctx.Request.Context(), userID)
	if err != nil {
		var mismatch *domain.DimensionMismatchError
		switch {
		case errors.As(err, &mismatch):
			controller.ErrorResponse(ctx, http.StatusInternalServerError, "DIMENSION_MISMATCH", err.Error())
		case errors.Is(err, domain.ErrDataUnavailable):
			controller.ErrorResponse(ctx, http.StatusNotFound, "NO_DATA", "未找到用户或曲目数据")
		default:
			controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		}
		return
	}

	controller.SuccessResponse(ctx, "top_songs", recommendations, len(recommendations))
}
