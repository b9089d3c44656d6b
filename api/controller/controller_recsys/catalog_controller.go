package controller_recsys

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/echofinder/recommendation-engine/api/controller"
	"github.com/echofinder/recommendation-engine/usecase/usecase_ingest"
)

type CatalogController struct {
	ImportUsecase *usecase_ingest.CatalogImportUsecase
	CatalogPath   string
}

func NewCatalogController(usecase *usecase_ingest.CatalogImportUsecase, catalogPath string) *CatalogController {
	return &CatalogController{
		ImportUsecase: usecase,
		CatalogPath:   catalogPath,
	}
}

// UpdateTracks POST /tracks/updateDb[?path=xxx]
func (c *CatalogController) UpdateTracks(ctx *gin.Context) {
	path := ctx.Query("path")
	if path == "" {
		path = c.CatalogPath
	}
	if path == "" {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "MISSING_PARAMS", "未配置曲目目录文件路径")
		return
	}

	count, err := c.ImportUsecase.ImportCSV(ctx.Request.Context(), path)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "imported", count, count)
}
