// Package rerank 提供打分之后的结果调整 Node（目前为 TopK 截断）。
package rerank

import (
	"context"

	"github.com/recflow/recflow/core"
	"github.com/recflow/recflow/pipeline"
)

// TopKNode 是截断节点，在打分节点之后使用，保留前 K 个候选。
//
// 使用场景：
//   - 打分后只返回 Top 5/10/20 个结果
//   - 控制推荐结果数量
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &rank.SimilarityNode{},  // 打分
//	        &rerank.TopKNode{K: 5},  // 截取 Top 5
//	    },
//	}
type TopKNode struct {
	// K 要保留的候选数量
	// 如果 K <= 0，则返回所有候选（不截断）
	// 如果 K > len(candidates)，则返回所有候选
	K int
}

func (n *TopKNode) Name() string {
	return "rerank.topk"
}

func (n *TopKNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopKNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	if n.K <= 0 {
		return candidates, nil
	}
	if len(candidates) <= n.K {
		return candidates, nil
	}
	return candidates[:n.K], nil
}
