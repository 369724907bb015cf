package pipeline

import (
	"context"

	"github.com/recflow/recflow/core"
)

// Pipeline 把打分逻辑拆成可组合的 Node 链，依序执行。
// 任意一个 Node 返回错误即中止整条链路，不产生部分结果。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	cur := candidates
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
