package recsys_interface

import (
	"context"

	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_models"
)

type EmbeddingRepository interface {
	GetAll(ctx context.Context) ([]*recsys_models.SongEmbedding, error)
	GetBySongIDs(ctx context.Context, songIDs []string) ([]*recsys_models.SongEmbedding, error)

	// BulkUpsert 以song_id为键批量写入，单条记录原子覆盖（last-writer-wins）
	BulkUpsert(ctx context.Context, embeddings []*recsys_models.SongEmbedding) (int, error)
}

// TextEncoder 外部文本编码服务的黑盒契约
// 相同输入必须返回相同向量；调用开销不可忽略，尽量批量
type TextEncoder interface {
	Encode(ctx context.Context, text string) ([]float64, error)
	EncodeBatch(ctx context.Context, texts []string) ([][]float64, error)
}
