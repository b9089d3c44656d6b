package recsys_models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SongEmbedding 单曲的混合向量文档（songs_embeddings集合）
// 向量 = L2归一化文本向量 ++ 5个归一化数值特征，整体再做一次L2归一化
// 每个SongID至多一条存活记录，重建时整条覆盖（不存在部分写入）
type SongEmbedding struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	SongID     string             `bson:"song_id" json:"song_id"`
	SpotifyID  string             `bson:"spotify_id" json:"spotify_id"`
	LastfmID   string             `bson:"lastfm_id" json:"lastfm_id"`
	Embeddings []float64          `bson:"embeddings" json:"embeddings"`
	UpdatedAt  string             `bson:"updatedAt" json:"updatedAt"`
}

// NumericFeatureCount 向量尾部的数值特征个数：year、duration、play、listeners、popularity
const NumericFeatureCount = 5
