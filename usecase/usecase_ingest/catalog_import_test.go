package usecase_ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echofinder/recommendation-engine/domain"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_models"
	"github.com/echofinder/recommendation-engine/usecase/usecase_recsys"
)

type stubTrackRepo struct {
	upserted []*recsys_models.Track
}

func (s *stubTrackRepo) GetBySongID(context.Context, string) (*recsys_models.Track, error) {
	return nil, domain.ErrDataUnavailable
}

func (s *stubTrackRepo) GetBySongIDs(context.Context, []string) ([]*recsys_models.Track, error) {
	return nil, nil
}

func (s *stubTrackRepo) GetByArtistNames(context.Context, []string) ([]*recsys_models.Track, error) {
	return nil, nil
}

func (s *stubTrackRepo) GetByGenreTags(context.Context, []string) ([]*recsys_models.Track, error) {
	return nil, nil
}

func (s *stubTrackRepo) GetPendingEmbeddings(context.Context) ([]*recsys_models.Track, error) {
	return nil, nil
}

func (s *stubTrackRepo) GetAll(context.Context) ([]*recsys_models.Track, error) {
	return s.upserted, nil
}

func (s *stubTrackRepo) BulkUpsert(_ context.Context, tracks []*recsys_models.Track) (int, error) {
	s.upserted = append(s.upserted, tracks...)
	return len(tracks), nil
}

func (s *stubTrackRepo) MarkEmbedded(context.Context, []*recsys_models.Track) error {
	return nil
}

func (s *stubTrackRepo) FieldRanges(context.Context, []string) (map[string]recsys_models.FeatureRange, error) {
	return nil, domain.ErrDataUnavailable
}

type stubPopularity struct {
	popularity float64
	spotifyID  string
	calls      int
}

func (s *stubPopularity) LookupPopularity(context.Context, *recsys_models.Track) (float64, string, error) {
	s.calls++
	return s.popularity, s.spotifyID, nil
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracks.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const catalogCSV = `song_id,title,release,artist_name,duration,year,total_play_counts,total_listeners_counts,spotify_popularity,all_tags,wiki_summary
s1,Night Drive,Album One,Artist A feat. Artist B,210,2005,500,250,0,synth_pop,About driving
s2,Morning Sun,Album Two,Artist C,180,2010,900,400,64,folk_acoustic,
s1,Night Drive,Album One,Artist A feat. Artist B,210,2005,500,250,0,synth_pop,About driving
`

func newImportUsecase(repo *stubTrackRepo, popularity *stubPopularity) *CatalogImportUsecase {
	normalizer := usecase_recsys.NewFeatureNormalizer(repo)
	if popularity == nil {
		return NewCatalogImportUsecase(repo, nil, normalizer, zerolog.Nop(), time.Minute)
	}
	return NewCatalogImportUsecase(repo, popularity, normalizer, zerolog.Nop(), time.Minute)
}

func TestImportCSV(t *testing.T) {
	repo := &stubTrackRepo{}
	usecase := newImportUsecase(repo, nil)

	count, err := usecase.ImportCSV(context.Background(), writeCatalog(t, catalogCSV))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// 重复song_id保留首条
	require.Len(t, repo.upserted, 2)

	first := repo.upserted[0]
	assert.Equal(t, "s1", first.SongID)
	assert.Equal(t, "Night Drive", first.Title)
	require.Len(t, first.Artists, 2)
	assert.Equal(t, "Artist A", first.Artists[0].Name)
	assert.Equal(t, "Artist B", first.Artists[1].Name)
	assert.Equal(t, "synth,pop", first.AllTags)
	assert.Equal(t, "msd", first.Source)
	assert.Equal(t, recsys_models.EmbeddingsStatusPending, first.EmbeddingsStatus)
	assert.Equal(t, 210.0, first.Duration)
	assert.Equal(t, 2005, first.Year)

	// 导入时推算缺失热度
	for _, track := range repo.upserted {
		require.NotNil(t, track.PopularityScore)
		assert.Greater(t, *track.PopularityScore, 0.0)
	}
}

func TestImportCSVEnrichesMissingPopularity(t *testing.T) {
	repo := &stubTrackRepo{}
	popularity := &stubPopularity{popularity: 42, spotifyID: "sp42"}
	usecase := newImportUsecase(repo, popularity)

	_, err := usecase.ImportCSV(context.Background(), writeCatalog(t, catalogCSV))
	require.NoError(t, err)

	// 只有spotify_popularity为0的s1需要补全
	assert.Equal(t, 1, popularity.calls)
	assert.Equal(t, 42.0, repo.upserted[0].SpotifyPopularity)
	assert.Equal(t, "sp42", repo.upserted[0].SpotifyID)
}

func TestImportCSVMissingFile(t *testing.T) {
	usecase := newImportUsecase(&stubTrackRepo{}, nil)

	_, err := usecase.ImportCSV(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

func TestSplitArtists(t *testing.T) {
	artists := SplitArtists("Artist A feat. Artist B FEAT Artist C")
	require.Len(t, artists, 3)
	assert.Equal(t, "Artist A", artists[0].Name)
	assert.Equal(t, "Artist B", artists[1].Name)
	assert.Equal(t, "Artist C", artists[2].Name)

	solo := SplitArtists("Solo Artist")
	require.Len(t, solo, 1)
	assert.Equal(t, "Solo Artist", solo[0].Name)
}
