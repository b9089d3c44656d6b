package repository_enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/echofinder/recommendation-engine/domain"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_interface"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_models"
)

// 低于该相似度的搜索结果视为不同曲目
const matchThreshold = 0.85

const searchLimit = 5

// spotifyPopularity 通过Spotify搜索补全平台热度
// 仅客户端凭证流，不涉及用户授权
type spotifyPopularity struct {
	client *spotify.Client
	metric *metrics.JaroWinkler
}

func NewSpotifyPopularitySource(ctx context.Context, clientID, clientSecret string) (recsys_interface.PlatformPopularitySource, error) {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain spotify token: %w", err)
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	return &spotifyPopularity{
		client: spotify.New(httpClient),
		metric: metrics.NewJaroWinkler(),
	}, nil
}

// LookupPopularity 搜索"标题 演出者"并用Jaro-Winkler校验标题，未匹配返回(0, "", nil)
func (s *spotifyPopularity) LookupPopularity(ctx context.Context, track *recsys_models.Track) (float64, string, error) {
	query := track.Title
	if names := track.ArtistNames(); names != "" {
		query = fmt.Sprintf("%s %s", track.Title, names)
	}

	result, err := s.client.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(searchLimit))
	if err != nil {
		return 0, "", &domain.UpstreamError{Stage: "spotify_search", Err: err}
	}
	if result.Tracks == nil || len(result.Tracks.Tracks) == 0 {
		return 0, "", nil
	}

	want := normalizeTitle(track.Title)
	for _, candidate := range result.Tracks.Tracks {
		got := normalizeTitle(candidate.Name)
		if strutil.Similarity(want, got, s.metric) < matchThreshold {
			continue
		}
		return float64(candidate.Popularity), string(candidate.ID), nil
	}
	return 0, "", nil
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
