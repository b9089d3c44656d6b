package usecase_ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_interface"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_models"
	"github.com/echofinder/recommendation-engine/usecase/usecase_recsys"
)

// 演出者串按"feat."拆成多位演出者
var featPattern = regexp.MustCompile(`(?i)\s+feat\.?\s+`)

const defaultSource = "msd"

// CatalogImportUsecase 从CSV导入曲目目录
// 导入即推算缺失热度，新曲目等待下一轮Embedding重建
type CatalogImportUsecase struct {
	trackRepository recsys_interface.TrackRepository
	popularity      recsys_interface.PlatformPopularitySource
	normalizer      *usecase_recsys.FeatureNormalizer
	logger          zerolog.Logger
	contextTimeout  time.Duration
}

// NewCatalogImportUsecase popularity可以为nil，此时跳过平台热度补全
func NewCatalogImportUsecase(
	trackRepository recsys_interface.TrackRepository,
	popularity recsys_interface.PlatformPopularitySource,
	normalizer *usecase_recsys.FeatureNormalizer,
	logger zerolog.Logger,
	timeout time.Duration,
) *CatalogImportUsecase {
	return &CatalogImportUsecase{
		trackRepository: trackRepository,
		popularity:      popularity,
		normalizer:      normalizer,
		logger:          logger,
		contextTimeout:  timeout,
	}
}

// ImportCSV 读取、清洗并批量写入曲目，返回生效条数
func (u *CatalogImportUsecase) ImportCSV(c context.Context, path string) (int, error) {
	ctx, cancel := context.WithTimeout(c, u.contextTimeout)
	defer cancel()

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	tracks, err := u.parse(file)
	if err != nil {
		return 0, err
	}
	if len(tracks) == 0 {
		return 0, nil
	}

	u.enrich(ctx, tracks)
	u.normalizer.ImputePopularity(tracks)

	count, err := u.trackRepository.BulkUpsert(ctx, tracks)
	if err != nil {
		return 0, err
	}

	// 全库min/max已随导入改变
	u.normalizer.Invalidate()

	u.logger.Info().Int("imported", count).Str("path", path).Msg("catalog import finished")
	return count, nil
}

func (u *CatalogImportUsecase) parse(r io.Reader) ([]*recsys_models.Track, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	seen := make(map[string]struct{})
	var tracks []*recsys_models.Track
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog row: %w", err)
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		songID := field("song_id")
		if songID == "" {
			continue
		}
		// 重复song_id保留首条
		if _, ok := seen[songID]; ok {
			continue
		}
		seen[songID] = struct{}{}

		track := &recsys_models.Track{
			SongID:               songID,
			Title:                field("title"),
			Release:              field("release"),
			Artists:              SplitArtists(field("artist_name")),
			Duration:             parseFloat(field("duration")),
			Year:                 int(parseFloat(field("year"))),
			TotalPlayCounts:      parseFloat(field("total_play_counts")),
			TotalListenersCounts: parseFloat(field("total_listeners_counts")),
			SpotifyPopularity:    parseFloat(field("spotify_popularity")),
			AllTags:              strings.ReplaceAll(field("all_tags"), "_", ","),
			WikiSummary:          field("wiki_summary"),
			SpotifyID:            field("spotify_id"),
			LastfmID:             field("lastfm_id"),
			Source:               defaultSource,
			EmbeddingsStatus:     recsys_models.EmbeddingsStatusPending,
		}
		if source := field("source"); source != "" {
			track.Source = source
		}
		if raw := field("popularity_score"); raw != "" {
			score := parseFloat(raw)
			track.PopularityScore = &score
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

// enrich 平台热度缺失时尝试外部查询；查询失败不阻断导入
func (u *CatalogImportUsecase) enrich(ctx context.Context, tracks []*recsys_models.Track) {
	if u.popularity == nil {
		return
	}
	for _, track := range tracks {
		if track.SpotifyPopularity > 0 {
			continue
		}
		popularity, spotifyID, err := u.popularity.LookupPopularity(ctx, track)
		if err != nil {
			u.logger.Warn().Err(err).Str("song_id", track.SongID).Msg("popularity lookup failed")
			continue
		}
		if spotifyID == "" {
			continue
		}
		track.SpotifyPopularity = popularity
		if track.SpotifyID == "" {
			track.SpotifyID = spotifyID
		}
	}
}

// SplitArtists "A feat. B"形式的署名拆成独立演出者
func SplitArtists(name string) []recsys_models.TrackArtist {
	parts := featPattern.Split(name, -1)
	artists := make([]recsys_models.TrackArtist, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		artists = append(artists, recsys_models.TrackArtist{Name: part})
	}
	return artists
}

func parseFloat(raw string) float64 {
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}
