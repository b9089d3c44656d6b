package usecase_recsys

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/echofinder/recommendation-engine/domain"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_interface"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_models"
)

// recommendUsecase 推荐编排：取信号、聚合偏好、全库排名、拼接展示字段
// 任一环节失败整个请求失败，绝不返回截断的列表
type recommendUsecase struct {
	trackRepository      recsys_interface.TrackRepository
	embeddingRepository  recsys_interface.EmbeddingRepository
	userSignalsRepo      recsys_interface.UserSignalsRepository
	preferenceAggregator *PreferenceAggregator
	logger               zerolog.Logger
	contextTimeout       time.Duration
}

func NewRecommendUsecase(
	trackRepository recsys_interface.TrackRepository,
	embeddingRepository recsys_interface.EmbeddingRepository,
	userSignalsRepo recsys_interface.UserSignalsRepository,
	preferenceAggregator *PreferenceAggregator,
	logger zerolog.Logger,
	timeout time.Duration,
) recsys_interface.RecommendUsecase {
	return &recommendUsecase{
		trackRepository:      trackRepository,
		embeddingRepository:  embeddingRepository,
		userSignalsRepo:      userSignalsRepo,
		preferenceAggregator: preferenceAggregator,
		logger:               logger,
		contextTimeout:       timeout,
	}
}

func (u *recommendUsecase) RecommendForUser(c context.Context, userID string) ([]recsys_models.Recommendation, error) {
	ctx, cancel := context.WithTimeout(c, u.contextTimeout)
	defer cancel()

	logger := u.logger.With().Str("request_id", uuid.NewString()).Str("user_id", userID).Logger()

	profile, err := u.fetchProfile(ctx, userID)
	if err != nil {
		return nil, &domain.UpstreamError{Stage: "user_signals", Err: err}
	}
	if profile.IsEmpty() {
		logger.Warn().Msg("user has no preference signals, recommendations will be low quality")
	}

	catalog, err := u.embeddingRepository.GetAll(ctx)
	if err != nil {
		return nil, &domain.UpstreamError{Stage: "embedding_catalog", Err: err}
	}
	if len(catalog) == 0 {
		logger.Warn().Msg("embedding catalog is empty")
		return []recsys_models.Recommendation{}, nil
	}
	dim := len(catalog[0].Embeddings)

	sets, err := u.preferenceAggregator.CandidateSets(ctx, profile)
	if err != nil {
		return nil, &domain.UpstreamError{Stage: "candidate_sets", Err: err}
	}

	preference, err := u.preferenceAggregator.PreferenceVector(ctx, sets, dim)
	if err != nil {
		return nil, &domain.UpstreamError{Stage: "preference_vector", Err: err}
	}

	ranked, err := RankCatalog(preference, catalog, sets)
	if err != nil {
		return nil, err
	}

	recommendations, err := u.hydrate(ctx, ranked)
	if err != nil {
		return nil, &domain.UpstreamError{Stage: "track_details", Err: err}
	}

	logger.Info().Int("returned", len(recommendations)).Int("catalog", len(catalog)).Msg("recommendations generated")
	return recommendations, nil
}

func (u *recommendUsecase) fetchProfile(ctx context.Context, userID string) (*recsys_models.UserProfile, error) {
	genres, err := u.userSignalsRepo.FavoriteGenres(ctx, userID)
	if err != nil {
		return nil, err
	}
	artists, err := u.userSignalsRepo.FavoriteArtists(ctx, userID)
	if err != nil {
		return nil, err
	}
	liked, err := u.userSignalsRepo.LikedSongs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &recsys_models.UserProfile{
		UserID:     userID,
		LikedSongs: liked,
		FavArtists: artists,
		FavGenres:  genres,
	}, nil
}

// hydrate 按排名顺序拼接展示字段；缺元数据的曲目跳过但名次保留
func (u *recommendUsecase) hydrate(ctx context.Context, ranked []recsys_models.ScoredTrack) ([]recsys_models.Recommendation, error) {
	songIDs := make([]string, 0, len(ranked))
	for _, item := range ranked {
		songIDs = append(songIDs, item.SongID)
	}

	tracks, err := u.trackRepository.GetBySongIDs(ctx, songIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*recsys_models.Track, len(tracks))
	for _, track := range tracks {
		byID[track.SongID] = track
	}

	recommendations := make([]recsys_models.Recommendation, 0, len(ranked))
	for _, item := range ranked {
		track, ok := byID[item.SongID]
		if !ok {
			continue
		}
		recommendations = append(recommendations, recsys_models.Recommendation{
			ScoredTrack:       item,
			Title:             track.Title,
			Release:           track.Release,
			Artists:           track.Artists,
			PopularityScore:   track.PopularityScore,
			SpotifyID:         track.SpotifyID,
			SpotifyPopularity: track.SpotifyPopularity,
			Image:             track.Image,
		})
	}
	return recommendations, nil
}
