package recsys_models

// ScoredTrack 单曲对偏好向量的打分结果（每次请求临时生成，不落库）
type ScoredTrack struct {
	SongID     string  `json:"song_id"`
	SimScore   float64 `json:"sim_score"`   // 余弦相似度
	BonusScore float64 `json:"bonus_score"` // 类别命中加分，0~0.15
	FinalScore float64 `json:"final_score"` // sim + bonus，排序键
	Rank       int     `json:"rank"`
}

// Recommendation 排名结果拼接曲目展示字段后的最终条目
type Recommendation struct {
	ScoredTrack
	Title             string        `json:"title"`
	Release           string        `json:"release"`
	Artists           []TrackArtist `json:"artists"`
	PopularityScore   *float64      `json:"popularity_score"`
	SpotifyID         string        `json:"spotify_id"`
	SpotifyPopularity float64       `json:"spotify_popularity"`
	Image             TrackImage    `json:"image"`
}
