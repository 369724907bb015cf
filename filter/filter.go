// Package filter 提供候选过滤 Node 与过滤器实现。
package filter

import (
	"context"

	"github.com/recflow/recflow/core"
	"github.com/recflow/recflow/pipeline"
)

// Filter 判断单个候选是否应被剔除。
type Filter interface {
	Name() string

	// ShouldFilter 返回 true 表示剔除该候选
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, c *core.Candidate) (bool, error)
}

// Node 是过滤 Node，可以组合多个过滤器。
// 任何一个过滤器返回 true，该候选就会被剔除。
type Node struct {
	Filters []Filter
}

func (n *Node) Name() string {
	return "filter.node"
}

func (n *Node) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *Node) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(n.Filters) == 0 || len(candidates) == 0 {
		return candidates, nil
	}

	out := make([]*core.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}

		dropped := false
		reason := ""
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, c)
			if err != nil {
				// 过滤器错误时跳过该过滤器，不中断链路
				continue
			}
			if ok {
				dropped = true
				reason = f.Name()
				break
			}
		}

		if dropped {
			// 记录过滤原因（用于调试/观测）
			c.PutLabel("filtered", core.Label{Value: "true", Source: reason})
			continue
		}
		out = append(out, c)
	}

	return out, nil
}
