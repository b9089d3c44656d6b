package usecase_recsys

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/echofinder/recommendation-engine/domain"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_interface"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_models"
	"github.com/echofinder/recommendation-engine/domain/domain_util"
)

// embeddingUsecase 曲目Embedding构建
// 文本向量与数值特征拼接：先归一文本向量，拼上5维数值特征后整体再归一
type embeddingUsecase struct {
	trackRepository     recsys_interface.TrackRepository
	embeddingRepository recsys_interface.EmbeddingRepository
	encoder             recsys_interface.TextEncoder
	normalizer          *FeatureNormalizer
	logger              zerolog.Logger
	contextTimeout      time.Duration
}

func NewEmbeddingUsecase(
	trackRepository recsys_interface.TrackRepository,
	embeddingRepository recsys_interface.EmbeddingRepository,
	encoder recsys_interface.TextEncoder,
	normalizer *FeatureNormalizer,
	logger zerolog.Logger,
	timeout time.Duration,
) recsys_interface.EmbeddingUsecase {
	return &embeddingUsecase{
		trackRepository:     trackRepository,
		embeddingRepository: embeddingRepository,
		encoder:             encoder,
		normalizer:          normalizer,
		logger:              logger,
		contextTimeout:      timeout,
	}
}

// BuildDescriptor 曲目的文本描述串，作为编码服务的输入
// all_tags存储时用下划线分隔，这里还原成逗号
func BuildDescriptor(track *recsys_models.Track) string {
	tags := strings.ReplaceAll(track.AllTags, "_", ",")
	return fmt.Sprintf(
		"Title: %s | Artists: %s | Album: %s | Tags: %s | Wiki_Summary: %s",
		track.Title, track.ArtistNames(), track.Release, tags, track.WikiSummary,
	)
}

func (u *embeddingUsecase) RebuildSong(c context.Context, songID string) error {
	ctx, cancel := context.WithTimeout(c, u.contextTimeout)
	defer cancel()

	track, err := u.trackRepository.GetBySongID(ctx, songID)
	if err != nil {
		return err
	}

	u.normalizer.ImputePopularity([]*recsys_models.Track{track})

	embedding, err := u.buildEmbedding(ctx, track)
	if err != nil {
		return err
	}

	if _, err = u.embeddingRepository.BulkUpsert(ctx, []*recsys_models.SongEmbedding{embedding}); err != nil {
		return err
	}
	return u.trackRepository.MarkEmbedded(ctx, []*recsys_models.Track{track})
}

// RebuildPending 单曲失败只记日志并跳过，该曲目状态保持pending待下次重建
func (u *embeddingUsecase) RebuildPending(c context.Context, force bool) (int, error) {
	ctx, cancel := context.WithTimeout(c, u.contextTimeout)
	defer cancel()

	var tracks []*recsys_models.Track
	var err error
	if force {
		tracks, err = u.trackRepository.GetAll(ctx)
	} else {
		tracks, err = u.trackRepository.GetPendingEmbeddings(ctx)
	}
	if err != nil {
		return 0, err
	}
	if len(tracks) == 0 {
		return 0, nil
	}

	u.normalizer.ImputePopularity(tracks)

	textVectors := u.encodeDescriptors(ctx, tracks)

	embeddings := make([]*recsys_models.SongEmbedding, 0, len(tracks))
	embedded := make([]*recsys_models.Track, 0, len(tracks))
	for i, track := range tracks {
		if textVectors[i] == nil {
			continue
		}
		embedding, err := u.assembleEmbedding(ctx, track, textVectors[i])
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			u.logger.Warn().Err(err).Str("song_id", track.SongID).Msg("skipping track, embedding build failed")
			continue
		}
		embeddings = append(embeddings, embedding)
		embedded = append(embedded, track)
	}
	if len(embeddings) == 0 {
		return 0, &domain.UpstreamError{Stage: "embedding_build", Err: fmt.Errorf("no track could be embedded out of %d", len(tracks))}
	}

	count, err := u.embeddingRepository.BulkUpsert(ctx, embeddings)
	if err != nil {
		return 0, err
	}
	if err = u.trackRepository.MarkEmbedded(ctx, embedded); err != nil {
		return 0, err
	}

	u.logger.Info().Int("embedded", count).Int("requested", len(tracks)).Msg("embedding rebuild finished")
	return count, nil
}

// encodeDescriptors 先整批编码，整批失败再退化为逐曲目编码
// 返回切片与tracks等长，失败曲目的位置为nil
func (u *embeddingUsecase) encodeDescriptors(ctx context.Context, tracks []*recsys_models.Track) [][]float64 {
	descriptors := make([]string, len(tracks))
	for i, track := range tracks {
		descriptors[i] = BuildDescriptor(track)
	}

	vectors, err := u.encoder.EncodeBatch(ctx, descriptors)
	if err == nil && len(vectors) == len(tracks) {
		return vectors
	}
	u.logger.Warn().Err(err).Msg("batch encode failed, falling back to per-track encoding")

	vectors = make([][]float64, len(tracks))
	for i, descriptor := range descriptors {
		if ctx.Err() != nil {
			break
		}
		vector, err := u.encoder.Encode(ctx, descriptor)
		if err != nil {
			u.logger.Warn().Err(err).Str("song_id", tracks[i].SongID).Msg("skipping track, encoding failed")
			continue
		}
		vectors[i] = vector
	}
	return vectors
}

func (u *embeddingUsecase) buildEmbedding(ctx context.Context, track *recsys_models.Track) (*recsys_models.SongEmbedding, error) {
	textVector, err := u.encoder.Encode(ctx, BuildDescriptor(track))
	if err != nil {
		return nil, err
	}
	return u.assembleEmbedding(ctx, track, textVector)
}

func (u *embeddingUsecase) assembleEmbedding(ctx context.Context, track *recsys_models.Track, textVector []float64) (*recsys_models.SongEmbedding, error) {
	if len(textVector) == 0 {
		return nil, &domain.UpstreamError{Stage: "text_encoder", Err: fmt.Errorf("empty vector for song %s", track.SongID)}
	}

	numeric, err := u.normalizer.NumericFeatures(ctx, track)
	if err != nil {
		return nil, err
	}

	vector := domain_util.L2Normalize(textVector)
	vector = append(vector, numeric...)
	vector = domain_util.L2Normalize(vector)

	return &recsys_models.SongEmbedding{
		SongID:     track.SongID,
		SpotifyID:  track.SpotifyID,
		LastfmID:   track.LastfmID,
		Embeddings: vector,
	}, nil
}
