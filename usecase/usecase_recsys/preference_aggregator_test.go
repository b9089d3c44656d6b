package usecase_recsys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_models"
)

func TestCandidateSetsKeepDuplicatesAcrossSets(t *testing.T) {
	trackRepo := &fakeTrackRepo{
		tracks: []*recsys_models.Track{
			{SongID: "t1", Artists: []recsys_models.TrackArtist{{Name: "Artist A"}}, AllTags: "rock,indie"},
			{SongID: "t2", Artists: []recsys_models.TrackArtist{{Name: "Artist B"}}, AllTags: "jazz"},
		},
	}
	aggregator := NewPreferenceAggregator(trackRepo, &fakeEmbeddingRepo{})

	profile := &recsys_models.UserProfile{
		UserID:     "u1",
		LikedSongs: []string{"t1"},
		FavArtists: []string{"Artist A"},
		FavGenres:  []string{"rock"},
	}

	sets, err := aggregator.CandidateSets(context.Background(), profile)
	require.NoError(t, err)
	require.Len(t, sets, 3)

	// t1同时命中三个信号，留在三个候选集里
	assert.Equal(t, recsys_models.CandidateLikedSongs, sets[0].Label)
	assert.Equal(t, []string{"t1"}, sets[0].SongIDs)
	assert.Equal(t, recsys_models.CandidateFavArtists, sets[1].Label)
	assert.Equal(t, []string{"t1"}, sets[1].SongIDs)
	assert.Equal(t, recsys_models.CandidateFavGenres, sets[2].Label)
	assert.Equal(t, []string{"t1"}, sets[2].SongIDs)
}

func TestPreferenceVectorWeightsSets(t *testing.T) {
	embeddingRepo := &fakeEmbeddingRepo{
		embeddings: []*recsys_models.SongEmbedding{
			{SongID: "liked", Embeddings: []float64{1, 0, 0}},
			{SongID: "artist", Embeddings: []float64{0, 1, 0}},
			{SongID: "genre", Embeddings: []float64{0, 0, 1}},
		},
	}
	aggregator := NewPreferenceAggregator(&fakeTrackRepo{}, embeddingRepo)

	sets := []recsys_models.CandidateSet{
		{Label: recsys_models.CandidateLikedSongs, SongIDs: []string{"liked"}},
		{Label: recsys_models.CandidateFavArtists, SongIDs: []string{"artist"}},
		{Label: recsys_models.CandidateFavGenres, SongIDs: []string{"genre"}},
	}

	preference, err := aggregator.PreferenceVector(context.Background(), sets, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, preference[0], 1e-9)
	assert.InDelta(t, 0.3, preference[1], 1e-9)
	assert.InDelta(t, 0.2, preference[2], 1e-9)
}

func TestPreferenceVectorEmptySignalsFallsBackToZero(t *testing.T) {
	aggregator := NewPreferenceAggregator(&fakeTrackRepo{}, &fakeEmbeddingRepo{})

	sets := []recsys_models.CandidateSet{
		{Label: recsys_models.CandidateLikedSongs},
		{Label: recsys_models.CandidateFavArtists},
		{Label: recsys_models.CandidateFavGenres},
	}

	preference, err := aggregator.PreferenceVector(context.Background(), sets, 4)
	require.NoError(t, err)
	require.Len(t, preference, 4)
	for _, v := range preference {
		assert.Zero(t, v)
	}
}

func TestPreferenceVectorPartialSignals(t *testing.T) {
	embeddingRepo := &fakeEmbeddingRepo{
		embeddings: []*recsys_models.SongEmbedding{
			{SongID: "t1", Embeddings: []float64{1, 1}},
		},
	}
	aggregator := NewPreferenceAggregator(&fakeTrackRepo{}, embeddingRepo)

	sets := []recsys_models.CandidateSet{
		{Label: recsys_models.CandidateLikedSongs, SongIDs: []string{"t1"}},
		{Label: recsys_models.CandidateFavArtists},
		{Label: recsys_models.CandidateFavGenres},
	}

	preference, err := aggregator.PreferenceVector(context.Background(), sets, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, preference[0], 1e-9)
	assert.InDelta(t, 0.5, preference[1], 1e-9)
}
