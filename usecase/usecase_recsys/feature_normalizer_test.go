package usecase_recsys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_models"
)

func popularityOf(v float64) *float64 {
	return &v
}

func TestMinMaxScale(t *testing.T) {
	assert.InDelta(t, 0.0, MinMaxScale(10, 10, 20), 1e-9)
	assert.InDelta(t, 0.5, MinMaxScale(15, 10, 20), 1e-9)
	assert.InDelta(t, 1.0, MinMaxScale(20, 10, 20), 1e-9)
}

func TestMinMaxScaleDegenerateRange(t *testing.T) {
	assert.Equal(t, 0.5, MinMaxScale(7, 7, 7))
	assert.Equal(t, 0.5, MinMaxScale(0, 3, 3))
}

func TestImputePopularityWithoutPlatformSignal(t *testing.T) {
	tracks := []*recsys_models.Track{
		{SongID: "t1", TotalPlayCounts: 0, TotalListenersCounts: 0},
		{SongID: "t2", TotalPlayCounts: 50, TotalListenersCounts: 50},
		{SongID: "t3", TotalPlayCounts: 100, TotalListenersCounts: 100},
	}

	normalizer := NewFeatureNormalizer(&fakeTrackRepo{})
	normalizer.ImputePopularity(tracks)

	require.NotNil(t, tracks[0].PopularityScore)
	assert.InDelta(t, 1, *tracks[0].PopularityScore, 1e-9)
	assert.InDelta(t, 51, *tracks[1].PopularityScore, 1e-9)
	assert.InDelta(t, 100, *tracks[2].PopularityScore, 1e-9)
}

func TestImputePopularityKeepsExistingScores(t *testing.T) {
	tracks := []*recsys_models.Track{
		{SongID: "t1", TotalPlayCounts: 10, TotalListenersCounts: 10, PopularityScore: popularityOf(73)},
		{SongID: "t2", TotalPlayCounts: 90, TotalListenersCounts: 90},
	}

	normalizer := NewFeatureNormalizer(&fakeTrackRepo{})
	normalizer.ImputePopularity(tracks)

	assert.Equal(t, 73.0, *tracks[0].PopularityScore)
	require.NotNil(t, tracks[1].PopularityScore)
	assert.Greater(t, *tracks[1].PopularityScore, 0.0)
}

func TestImputePopularityConstantColumns(t *testing.T) {
	tracks := []*recsys_models.Track{
		{SongID: "t1", TotalPlayCounts: 10, TotalListenersCounts: 10},
		{SongID: "t2", TotalPlayCounts: 10, TotalListenersCounts: 10},
		{SongID: "t3", TotalPlayCounts: 10, TotalListenersCounts: 10},
	}

	normalizer := NewFeatureNormalizer(&fakeTrackRepo{})
	normalizer.ImputePopularity(tracks)

	// 常数列整列映射为0.5，三首曲目得到相同热度
	first := *tracks[0].PopularityScore
	assert.Equal(t, first, *tracks[1].PopularityScore)
	assert.Equal(t, first, *tracks[2].PopularityScore)
	for _, track := range tracks {
		assert.Equal(t, 0.5, track.PopularityNormalized)
	}
}

func TestImputePopularityUsesPlatformSignal(t *testing.T) {
	tracks := []*recsys_models.Track{
		{SongID: "t1", TotalPlayCounts: 0, TotalListenersCounts: 0, SpotifyPopularity: 80},
		{SongID: "t2", TotalPlayCounts: 100, TotalListenersCounts: 100, SpotifyPopularity: 0},
	}

	normalizer := NewFeatureNormalizer(&fakeTrackRepo{})
	normalizer.ImputePopularity(tracks)

	// t1: 0.15*0.8=0.12, t2: 0.55+0.30=0.85 → 区间缩放后为[0, 1]
	assert.InDelta(t, 1, *tracks[0].PopularityScore, 1e-9)
	assert.InDelta(t, 100, *tracks[1].PopularityScore, 1e-9)
}

func TestNumericFeaturesInUnitRange(t *testing.T) {
	repo := &fakeTrackRepo{
		ranges: map[string]recsys_models.FeatureRange{
			recsys_models.FieldYear:            {Min: 1990, Max: 2020},
			recsys_models.FieldDuration:        {Min: 60, Max: 360},
			recsys_models.FieldPlayCounts:      {Min: 0, Max: 1000},
			recsys_models.FieldListenersCounts: {Min: 0, Max: 500},
		},
	}
	normalizer := NewFeatureNormalizer(repo)

	track := &recsys_models.Track{
		SongID:               "t1",
		Year:                 2005,
		Duration:             210,
		TotalPlayCounts:      500,
		TotalListenersCounts: 250,
		PopularityNormalized: 0.4,
	}

	features, err := normalizer.NumericFeatures(context.Background(), track)
	require.NoError(t, err)
	require.Len(t, features, recsys_models.NumericFeatureCount)
	for _, feature := range features {
		assert.GreaterOrEqual(t, feature, 0.0)
		assert.LessOrEqual(t, feature, 1.0)
	}
	assert.InDelta(t, 0.5, features[0], 1e-9)
	assert.InDelta(t, 0.4, features[4], 1e-9)
}

func TestRangesCachedUntilInvalidate(t *testing.T) {
	repo := &fakeTrackRepo{
		ranges: map[string]recsys_models.FeatureRange{
			recsys_models.FieldYear: {Min: 2000, Max: 2010},
		},
	}
	normalizer := NewFeatureNormalizer(repo)

	first, err := normalizer.Ranges(context.Background(), false)
	require.NoError(t, err)

	repo.ranges = map[string]recsys_models.FeatureRange{
		recsys_models.FieldYear: {Min: 1900, Max: 2020},
	}

	cached, err := normalizer.Ranges(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	normalizer.Invalidate()
	refreshed, err := normalizer.Ranges(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1900.0, refreshed[recsys_models.FieldYear].Min)
}
