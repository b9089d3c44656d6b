package usecase_recsys

import (
	"context"
	"strings"

	"github.com/echofinder/recommendation-engine/domain"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_models"
)

type fakeTrackRepo struct {
	tracks   []*recsys_models.Track
	ranges   map[string]recsys_models.FeatureRange
	err      error
	marked   []*recsys_models.Track
	upserted []*recsys_models.Track
}

func (f *fakeTrackRepo) GetBySongID(_ context.Context, songID string) (*recsys_models.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, track := range f.tracks {
		if track.SongID == songID {
			return track, nil
		}
	}
	return nil, domain.ErrDataUnavailable
}

func (f *fakeTrackRepo) GetBySongIDs(_ context.Context, songIDs []string) ([]*recsys_models.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	want := make(map[string]struct{}, len(songIDs))
	for _, id := range songIDs {
		want[id] = struct{}{}
	}
	var out []*recsys_models.Track
	for _, track := range f.tracks {
		if _, ok := want[track.SongID]; ok {
			out = append(out, track)
		}
	}
	return out, nil
}

func (f *fakeTrackRepo) GetByArtistNames(_ context.Context, names []string) ([]*recsys_models.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*recsys_models.Track
	for _, track := range f.tracks {
		for _, artist := range track.Artists {
			for _, name := range names {
				if artist.Name == name {
					out = append(out, track)
				}
			}
		}
	}
	return out, nil
}

func (f *fakeTrackRepo) GetByGenreTags(_ context.Context, tags []string) ([]*recsys_models.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	seen := make(map[string]struct{})
	var out []*recsys_models.Track
	for _, tag := range tags {
		for _, track := range f.tracks {
			if !strings.Contains(track.AllTags, tag) {
				continue
			}
			if _, ok := seen[track.SongID]; ok {
				continue
			}
			seen[track.SongID] = struct{}{}
			out = append(out, track)
		}
	}
	return out, nil
}

func (f *fakeTrackRepo) GetPendingEmbeddings(_ context.Context) ([]*recsys_models.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*recsys_models.Track
	for _, track := range f.tracks {
		if track.EmbeddingsStatus == recsys_models.EmbeddingsStatusPending {
			out = append(out, track)
		}
	}
	return out, nil
}

func (f *fakeTrackRepo) GetAll(_ context.Context) ([]*recsys_models.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tracks, nil
}

func (f *fakeTrackRepo) BulkUpsert(_ context.Context, tracks []*recsys_models.Track) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.upserted = append(f.upserted, tracks...)
	return len(tracks), nil
}

func (f *fakeTrackRepo) MarkEmbedded(_ context.Context, tracks []*recsys_models.Track) error {
	if f.err != nil {
		return f.err
	}
	f.marked = append(f.marked, tracks...)
	return nil
}

func (f *fakeTrackRepo) FieldRanges(_ context.Context, fields []string) (map[string]recsys_models.FeatureRange, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.ranges != nil {
		return f.ranges, nil
	}
	return nil, domain.ErrDataUnavailable
}

type fakeEmbeddingRepo struct {
	embeddings []*recsys_models.SongEmbedding
	err        error
}

func (f *fakeEmbeddingRepo) GetAll(_ context.Context) ([]*recsys_models.SongEmbedding, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.embeddings, nil
}

func (f *fakeEmbeddingRepo) GetBySongIDs(_ context.Context, songIDs []string) ([]*recsys_models.SongEmbedding, error) {
	if f.err != nil {
		return nil, f.err
	}
	want := make(map[string]struct{}, len(songIDs))
	for _, id := range songIDs {
		want[id] = struct{}{}
	}
	var out []*recsys_models.SongEmbedding
	for _, embedding := range f.embeddings {
		if _, ok := want[embedding.SongID]; ok {
			out = append(out, embedding)
		}
	}
	return out, nil
}

func (f *fakeEmbeddingRepo) BulkUpsert(_ context.Context, embeddings []*recsys_models.SongEmbedding) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	for _, incoming := range embeddings {
		replaced := false
		for i, existing := range f.embeddings {
			if existing.SongID == incoming.SongID {
				f.embeddings[i] = incoming
				replaced = true
				break
			}
		}
		if !replaced {
			f.embeddings = append(f.embeddings, incoming)
		}
	}
	return len(embeddings), nil
}

type fakeSignalsRepo struct {
	genres  []string
	artists []string
	liked   []string
	err     error
}

func (f *fakeSignalsRepo) FavoriteGenres(_ context.Context, _ string) ([]string, error) {
	return f.genres, f.err
}

func (f *fakeSignalsRepo) FavoriteArtists(_ context.Context, _ string) ([]string, error) {
	return f.artists, f.err
}

func (f *fakeSignalsRepo) LikedSongs(_ context.Context, _ string) ([]string, error) {
	return f.liked, f.err
}

type fakeEncoder struct {
	encode func(text string) ([]float64, error)
}

func (f *fakeEncoder) Encode(_ context.Context, text string) ([]float64, error) {
	return f.encode(text)
}

func (f *fakeEncoder) EncodeBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, 0, len(texts))
	for _, text := range texts {
		vector, err := f.Encode(ctx, text)
		if err != nil {
			return nil, err
		}
		out = append(out, vector)
	}
	return out, nil
}
