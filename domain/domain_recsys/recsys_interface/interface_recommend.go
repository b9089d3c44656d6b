package recsys_interface

import (
	"context"

	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_models"
)

type RecommendUsecase interface {
	// RecommendForUser 为用户生成全库排名的Top-N推荐
	// 上游失败返回结构化错误而非截断列表；空信号降级为低质量但合法的结果
	RecommendForUser(ctx context.Context, userID string) ([]recsys_models.Recommendation, error)
}

type EmbeddingUsecase interface {
	// RebuildSong 重建单曲Embedding（失败只影响该曲目）
	RebuildSong(ctx context.Context, songID string) error

	// RebuildPending 重建embeddingsStatus=pending的曲目；force时重建全库
	RebuildPending(ctx context.Context, force bool) (int, error)
}

// PlatformPopularitySource 外部平台热度查询（可选的导入补全步骤）
type PlatformPopularitySource interface {
	// LookupPopularity 按曲目检索平台热度0-100与平台ID；未匹配时返回(0, "", nil)
	LookupPopularity(ctx context.Context, track *recsys_models.Track) (float64, string, error)
}
