package usecase_recsys

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/montanaflynn/stats"

	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_interface"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_models"
)

// 热度推算的加权系数
// 有平台热度可用时三路加权，否则两路
const (
	weightPlayCounts     = 0.55
	weightListeners      = 0.30
	weightListenersAlone = 0.35
	weightPlatform       = 0.15
)

// FeatureNormalizer 数值特征归一化器
// 全库min/max从数据库聚合取得并缓存，批量导入后需显式失效
type FeatureNormalizer struct {
	trackRepository recsys_interface.TrackRepository

	mu     sync.RWMutex
	cached map[string]recsys_models.FeatureRange
}

func NewFeatureNormalizer(trackRepository recsys_interface.TrackRepository) *FeatureNormalizer {
	return &FeatureNormalizer{
		trackRepository: trackRepository,
	}
}

// Ranges 返回全库数值字段的min/max，force时跳过缓存
func (n *FeatureNormalizer) Ranges(ctx context.Context, force bool) (map[string]recsys_models.FeatureRange, error) {
	if !force {
		n.mu.RLock()
		cached := n.cached
		n.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}
	}

	ranges, err := n.trackRepository.FieldRanges(ctx, recsys_models.NumericFields)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh feature ranges: %w", err)
	}

	n.mu.Lock()
	n.cached = ranges
	n.mu.Unlock()
	return ranges, nil
}

// Invalidate 使缓存失效，下次Ranges重新聚合
func (n *FeatureNormalizer) Invalidate() {
	n.mu.Lock()
	n.cached = nil
	n.mu.Unlock()
}

// MinMaxScale 将value线性映射到[0,1]；区间退化时返回0.5
func MinMaxScale(value, min, max float64) float64 {
	if min == max {
		return 0.5
	}
	return (value - min) / (max - min)
}

// ImputePopularity 就地推算缺失热度并填充popularity_normalized
// 只改写popularity_score缺失或非正的行，已有热度原样保留
func (n *FeatureNormalizer) ImputePopularity(tracks []*recsys_models.Track) {
	if len(tracks) == 0 {
		return
	}

	playCounts := make([]float64, len(tracks))
	listeners := make([]float64, len(tracks))
	for i, track := range tracks {
		playCounts[i] = track.TotalPlayCounts
		listeners[i] = track.TotalListenersCounts
	}
	playScaled := scaleColumn(playCounts)
	listenersScaled := scaleColumn(listeners)

	var maskedIdx []int
	for i, track := range tracks {
		if !track.HasPopularity() {
			maskedIdx = append(maskedIdx, i)
		}
	}

	if len(maskedIdx) > 0 {
		platformAvailable := false
		for _, i := range maskedIdx {
			if tracks[i].SpotifyPopularity > 0 {
				platformAvailable = true
				break
			}
		}

		combined := make([]float64, len(maskedIdx))
		for j, i := range maskedIdx {
			if platformAvailable {
				combined[j] = weightPlayCounts*playScaled[i] +
					weightListeners*listenersScaled[i] +
					weightPlatform*(tracks[i].SpotifyPopularity/100)
			} else {
				combined[j] = weightPlayCounts*playScaled[i] +
					weightListenersAlone*listenersScaled[i]
			}
		}
		combinedScaled := scaleColumn(combined)

		for j, i := range maskedIdx {
			score := 1 + math.Round(99*combinedScaled[j])
			tracks[i].PopularityScore = &score
		}
	}

	// popularity_normalized基于整批（含未改写的行）重新归一
	scores := make([]float64, len(tracks))
	for i, track := range tracks {
		if track.PopularityScore != nil {
			scores[i] = *track.PopularityScore
		}
	}
	scoresScaled := scaleColumn(scores)
	for i := range tracks {
		tracks[i].PopularityNormalized = scoresScaled[i]
	}
}

// NumericFeatures 单曲的5维数值特征，顺序固定：
// year, duration, total_play_counts, total_listeners_counts, popularity_normalized
func (n *FeatureNormalizer) NumericFeatures(ctx context.Context, track *recsys_models.Track) ([]float64, error) {
	ranges, err := n.Ranges(ctx, false)
	if err != nil {
		return nil, err
	}

	values := map[string]float64{
		recsys_models.FieldYear:            float64(track.Year),
		recsys_models.FieldDuration:        track.Duration,
		recsys_models.FieldPlayCounts:      track.TotalPlayCounts,
		recsys_models.FieldListenersCounts: track.TotalListenersCounts,
	}

	features := make([]float64, 0, recsys_models.NumericFeatureCount)
	for _, field := range recsys_models.NumericFields {
		fieldRange, ok := ranges[field]
		if !ok {
			features = append(features, 0.5)
			continue
		}
		features = append(features, MinMaxScale(values[field], fieldRange.Min, fieldRange.Max))
	}
	features = append(features, track.PopularityNormalized)
	return features, nil
}

// scaleColumn 整列min-max归一化，常数列全为0.5
func scaleColumn(values []float64) []float64 {
	out := make([]float64, len(values))
	min, errMin := stats.Min(values)
	max, errMax := stats.Max(values)
	if errMin != nil || errMax != nil {
		return out
	}
	for i, v := range values {
		out[i] = MinMaxScale(v, min, max)
	}
	return out
}
