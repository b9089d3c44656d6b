package usecase_recsys

import (
	"sort"

	"github.com/echofinder/recommendation-engine/domain"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_models"
	"github.com/echofinder/recommendation-engine/domain/domain_util"
)

// 命中一个候选集加0.05，三个集合封顶0.15
const setBonus = 0.05

// TopN 推荐列表长度上限
const TopN = 40

// RankCatalog 用偏好向量对全库打分并取Top-N
// 排序稳定：同分曲目保持目录遍历顺序
func RankCatalog(
	preference []float64,
	catalog []*recsys_models.SongEmbedding,
	sets []recsys_models.CandidateSet,
) ([]recsys_models.ScoredTrack, error) {
	membership := make([]map[string]struct{}, len(sets))
	for i, set := range sets {
		membership[i] = make(map[string]struct{}, len(set.SongIDs))
		for _, id := range set.SongIDs {
			membership[i][id] = struct{}{}
		}
	}

	scored := make([]recsys_models.ScoredTrack, 0, len(catalog))
	for _, embedding := range catalog {
		if len(embedding.Embeddings) != len(preference) {
			return nil, &domain.DimensionMismatchError{
				SongID:   embedding.SongID,
				Expected: len(preference),
				Got:      len(embedding.Embeddings),
			}
		}

		sim := domain_util.CosineSimilarity(preference, embedding.Embeddings)

		var bonus float64
		for _, members := range membership {
			if _, ok := members[embedding.SongID]; ok {
				bonus += setBonus
			}
		}

		scored = append(scored, recsys_models.ScoredTrack{
			SongID:     embedding.SongID,
			SimScore:   sim,
			BonusScore: bonus,
			FinalScore: sim + bonus,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})

	if len(scored) > TopN {
		scored = scored[:TopN]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored, nil
}
