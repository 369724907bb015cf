// Package rank 提供基于余弦相似度的候选打分与 TopK 选择。
package rank

import (
	"context"
	"sort"

	"github.com/recflow/recflow/core"
	"github.com/recflow/recflow/pipeline"
	"github.com/recflow/recflow/pkg/vectormath"
)

// DefaultTopK 是推荐结果的默认条数。
const DefaultTopK = 5

// TopK 对候选池做一次线性扫描打分，返回与 query 最相近的至多 k 个物品 ID，
// 按相似度降序排列。
//
// 语义约定：
//   - 维度与 query 不一致的候选被剔除，不参与打分，也不算错误
//     （DimensionMismatch 只在直接调用 vectormath.CosineSimilarity 时出现）
//   - 相同分数的候选保持输入顺序（稳定排序），保证结果可复现
//   - 有效候选不足 k 个时返回全部，k <= 0 时使用 DefaultTopK
//   - 只返回 ID，分数在本次调用内产生并丢弃
func TopK(query []float64, records []core.EmbeddingRecord, k int) []string {
	if k <= 0 {
		k = DefaultTopK
	}

	type scored struct {
		id    string
		score float64
	}
	scores := make([]scored, 0, len(records))
	for _, rec := range records {
		if len(rec.Embedding) != len(query) {
			continue
		}
		sim, err := vectormath.CosineSimilarity(query, rec.Embedding)
		if err != nil {
			continue
		}
		scores = append(scores, scored{id: rec.ID, score: sim})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})
	if len(scores) > k {
		scores = scores[:k]
	}

	ids := make([]string, len(scores))
	for i, s := range scores {
		ids[i] = s.id
	}
	return ids
}

// SimilarityNode 是打分 Node：对每个候选计算与 rctx.QueryVector 的余弦相似度，
// 写入 Score 并按分数降序稳定排序。维度不一致的候选被剔除。
//
// 截断不在这里做，配合 rerank.TopKNode 使用：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &rank.SimilarityNode{},
//	        &rerank.TopKNode{K: 5},
//	    },
//	}
type SimilarityNode struct{}

func (n *SimilarityNode) Name() string {
	return "rank.similarity"
}

func (n *SimilarityNode) Kind() pipeline.Kind {
	return pipeline.KindRank
}

func (n *SimilarityNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	query := rctx.QueryVector
	out := make([]*core.Candidate, 0, len(candidates))

	for _, c := range candidates {
		if c == nil || len(c.Embedding) != len(query) {
			continue
		}
		sim, err := vectormath.CosineSimilarity(query, c.Embedding)
		if err != nil {
			continue
		}
		c.Score = sim
		c.PutLabel("score_metric", core.Label{Value: "cosine", Source: "rank"})
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}
