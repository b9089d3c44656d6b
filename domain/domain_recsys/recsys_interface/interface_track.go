package recsys_interface

import (
	"context"

	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_models"
)

type TrackRepository interface {
	GetBySongID(ctx context.Context, songID string) (*recsys_models.Track, error)
	GetBySongIDs(ctx context.Context, songIDs []string) ([]*recsys_models.Track, error)

	// GetByArtistNames 演出者名与给定集合有交集的曲目（artists.name $in）
	GetByArtistNames(ctx context.Context, names []string) ([]*recsys_models.Track, error)

	// GetByGenreTags 标签串匹配任一给定风格的曲目（all_tags逐个$regex，区分大小写）
	GetByGenreTags(ctx context.Context, tags []string) ([]*recsys_models.Track, error)

	// GetPendingEmbeddings embeddingsStatus为pending的曲目
	GetPendingEmbeddings(ctx context.Context) ([]*recsys_models.Track, error)

	GetAll(ctx context.Context) ([]*recsys_models.Track, error)

	// BulkUpsert 以song_id为键批量插入或覆盖，返回生效条数
	BulkUpsert(ctx context.Context, tracks []*recsys_models.Track) (int, error)

	// MarkEmbedded 批量回写embeddingsStatus=done与推算出的popularity_score
	MarkEmbedded(ctx context.Context, tracks []*recsys_models.Track) error

	// FieldRanges 聚合全库数值字段的min/max，供归一化缓存刷新
	FieldRanges(ctx context.Context, fields []string) (map[string]recsys_models.FeatureRange, error)
}
