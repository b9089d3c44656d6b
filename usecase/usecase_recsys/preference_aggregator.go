package usecase_recsys

import (
	"context"

	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_interface"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_models"
	"github.com/echofinder/recommendation-engine/domain/domain_util"
)

// 三类信号合成偏好向量的权重
const (
	weightLikedSongs = 0.5
	weightFavArtists = 0.3
	weightFavGenres  = 0.2
)

// PreferenceAggregator 把用户三类偏好信号聚合成单个偏好向量
// 候选集之间不去重：同一曲目命中多个信号时在加分阶段按次数累计
type PreferenceAggregator struct {
	trackRepository     recsys_interface.TrackRepository
	embeddingRepository recsys_interface.EmbeddingRepository
}

func NewPreferenceAggregator(
	trackRepository recsys_interface.TrackRepository,
	embeddingRepository recsys_interface.EmbeddingRepository,
) *PreferenceAggregator {
	return &PreferenceAggregator{
		trackRepository:     trackRepository,
		embeddingRepository: embeddingRepository,
	}
}

// CandidateSets 按信号类型展开三个带标签的候选集，信号为空的集合为空集
func (a *PreferenceAggregator) CandidateSets(ctx context.Context, profile *recsys_models.UserProfile) ([]recsys_models.CandidateSet, error) {
	likedSet := recsys_models.CandidateSet{
		Label:   recsys_models.CandidateLikedSongs,
		SongIDs: profile.LikedSongs,
	}

	artistTracks, err := a.trackRepository.GetByArtistNames(ctx, profile.FavArtists)
	if err != nil {
		return nil, err
	}
	artistSet := recsys_models.CandidateSet{
		Label:   recsys_models.CandidateFavArtists,
		SongIDs: songIDsOf(artistTracks),
	}

	genreTracks, err := a.trackRepository.GetByGenreTags(ctx, profile.FavGenres)
	if err != nil {
		return nil, err
	}
	genreSet := recsys_models.CandidateSet{
		Label:   recsys_models.CandidateFavGenres,
		SongIDs: songIDsOf(genreTracks),
	}

	return []recsys_models.CandidateSet{likedSet, artistSet, genreSet}, nil
}

// PreferenceVector 各候选集均值向量的加权和
// 空集合降级为零向量而非报错，全空信号得到全零偏好
func (a *PreferenceAggregator) PreferenceVector(ctx context.Context, sets []recsys_models.CandidateSet, dim int) ([]float64, error) {
	preference := make([]float64, dim)
	for _, set := range sets {
		mean, err := a.setMean(ctx, set, dim)
		if err != nil {
			return nil, err
		}
		weight := setWeight(set.Label)
		for i := range preference {
			preference[i] += weight * mean[i]
		}
	}
	return domain_util.Sanitize(preference), nil
}

func (a *PreferenceAggregator) setMean(ctx context.Context, set recsys_models.CandidateSet, dim int) ([]float64, error) {
	embeddings, err := a.embeddingRepository.GetBySongIDs(ctx, set.SongIDs)
	if err != nil {
		return nil, err
	}

	vectors := make([][]float64, 0, len(embeddings))
	for _, embedding := range embeddings {
		vectors = append(vectors, embedding.Embeddings)
	}
	return domain_util.SafeMean(vectors, dim), nil
}

func setWeight(label recsys_models.CandidateLabel) float64 {
	switch label {
	case recsys_models.CandidateLikedSongs:
		return weightLikedSongs
	case recsys_models.CandidateFavArtists:
		return weightFavArtists
	case recsys_models.CandidateFavGenres:
		return weightFavGenres
	}
	return 0
}

func songIDsOf(tracks []*recsys_models.Track) []string {
	ids := make([]string, 0, len(tracks))
	for _, track := range tracks {
		ids = append(ids, track.SongID)
	}
	return ids
}
