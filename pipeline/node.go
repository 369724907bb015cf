package pipeline

import (
	"context"

	"github.com/recflow/recflow/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRank        Kind = "rank"        // 打分阶段：对候选计算相似度并排序
	KindFilter      Kind = "filter"      // 过滤阶段：剔除不符合约束的候选
	KindReRank      Kind = "rerank"      // 重排阶段：截断/结果修饰
	KindPostProcess Kind = "postprocess" // 后处理阶段：补充标记或最终修饰
)

// Node 是打分链路的最小可扩展单元。
// 统一采用"输入 candidates -> 输出 candidates"的形态，
// 方便打分、过滤、截断等操作自由组合。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		candidates []*core.Candidate,
	) ([]*core.Candidate, error)
}
