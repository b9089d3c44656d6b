package recsys_models

// UserProfile 单次推荐请求内的用户偏好快照（不持久化）
// 三个信号集合均允许为空；全空时偏好向量退化为零向量而不是报错
type UserProfile struct {
	UserID     string
	LikedSongs []string // song_id集合
	FavArtists []string // 演出者名集合
	FavGenres  []string // 风格标签集合
}

// IsEmpty 三个信号集合全部为空
func (p *UserProfile) IsEmpty() bool {
	return len(p.LikedSongs) == 0 && len(p.FavArtists) == 0 && len(p.FavGenres) == 0
}

// CandidateLabel 候选集来源标签
type CandidateLabel string

const (
	CandidateLikedSongs CandidateLabel = "liked_songs"
	CandidateFavArtists CandidateLabel = "fav_artists"
	CandidateFavGenres  CandidateLabel = "fav_genres"
)

// CandidateSet 按单一信号查出的候选曲目集合
// 三个候选集之间故意不去重：同一曲目命中多个信号时，分别计入各自的均值与加分
type CandidateSet struct {
	Label   CandidateLabel
	SongIDs []string
}

// Contains 曲目是否属于该候选集
func (s *CandidateSet) Contains(songID string) bool {
	for _, id := range s.SongIDs {
		if id == songID {
			return true
		}
	}
	return false
}
