package recsys_models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmbeddingsStatusPending Track尚未生成Embedding
const EmbeddingsStatusPending = "pending"

// EmbeddingsStatusDone Track的Embedding已写入songs_embeddings
const EmbeddingsStatusDone = "done"

// TrackArtist 曲目的单个演出者
// "A feat. B"形式的原始字段在导入时拆分为多个TrackArtist
type TrackArtist struct {
	Name      string `bson:"name" json:"name"`
	SpotifyID string `bson:"spotify_id" json:"spotify_id"`
}

// TrackImage 封面图信息（来自上游数据源，可能为空）
type TrackImage struct {
	URL    string `bson:"url" json:"url"`
	Height int    `bson:"height" json:"height"`
	Width  int    `bson:"width" json:"width"`
}

// Track 曲目元数据文档（trackdetails集合）
// SongID是稳定主键；PopularityScore在归一化流程中推算，范围1-100，未计算时为nil
type Track struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	SongID               string             `bson:"song_id" json:"song_id"`
	Title                string             `bson:"title" json:"title"`
	Release              string             `bson:"release" json:"release"` // 专辑名
	Artists              []TrackArtist      `bson:"artists" json:"artists"`
	Duration             float64            `bson:"duration" json:"duration"`
	Year                 int                `bson:"year" json:"year"`
	TotalPlayCounts      float64            `bson:"total_play_counts" json:"total_play_counts"`
	TotalListenersCounts float64            `bson:"total_listeners_counts" json:"total_listeners_counts"`
	SpotifyPopularity    float64            `bson:"spotify_popularity" json:"spotify_popularity"` // 平台热度 0-100，缺失时为0
	PopularityScore      *float64           `bson:"popularity_score" json:"popularity_score"`     // 推算热度 1-100
	PopularityNormalized float64            `bson:"popularity_normalized" json:"popularity_normalized"`
	AllTags              string             `bson:"all_tags" json:"all_tags"` // 逗号分隔的风格标签
	WikiSummary          string             `bson:"wiki_summary" json:"wiki_summary"`
	SpotifyID            string             `bson:"spotify_id" json:"spotify_id"`
	LastfmID             string             `bson:"lastfm_id" json:"lastfm_id"`
	Source               string             `bson:"source" json:"source"`
	EmbeddingsStatus     string             `bson:"embeddingsStatus" json:"embeddingsStatus"`
	Image                TrackImage         `bson:"image" json:"image"`
	UpdatedAt            string             `bson:"updatedAt,omitempty" json:"-"`
}

// ArtistNames 逗号拼接演出者名，作为Embedding描述文本的Artists段
func (t *Track) ArtistNames() string {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return strings.Join(names, ",")
}

// HasPopularity 已存在有效的推算热度（>0），归一化流程不再重算
func (t *Track) HasPopularity() bool {
	return t.PopularityScore != nil && *t.PopularityScore > 0
}
