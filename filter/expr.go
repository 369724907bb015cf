package filter

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/recflow/recflow/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

// getCELEnv 获取或创建 CEL 环境，定义可用变量
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// ExprFilter 是基于 CEL (Common Expression Language) 表达式的过滤器。
// 表达式是"剔除条件"：求值为 true 的候选会被剔除。
//
// 表达式语法（CEL 标准语法）：
//   - 分数：item.score <= 0.1 / item.score < 0.0
//   - 标记：label.score_metric == "cosine"
//   - 请求上下文：rctx.category == "pets"
//   - 组合：rctx.category == "pets" && item.score < 0.2
//
// 表达式在构造时编译一次，之后的求值线程安全、可并发复用。
type ExprFilter struct {
	expr string
	prg  cel.Program
}

// NewExprFilter 编译剔除表达式并返回过滤器。
// 表达式必须返回布尔值；编译错误立即返回。
func NewExprFilter(expr string) (*ExprFilter, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}

	return &ExprFilter{expr: expr, prg: prg}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, c *core.Candidate) (bool, error) {
	out, _, err := f.prg.Eval(buildInput(rctx, c))
	if err != nil {
		// 不存在的 key 会得到求值错误；用 label.key != null 检查存在性
		return false, fmt.Errorf("eval %q: %w", f.expr, err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression %q must return boolean, got %T", f.expr, out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据。
// label 提供顶层访问：label.score_metric 直接取 Value。
func buildInput(rctx *core.RecommendContext, c *core.Candidate) map[string]interface{} {
	labels := make(map[string]interface{}, len(c.Labels))
	for k, v := range c.Labels {
		labels[k] = v.Value
	}

	item := map[string]interface{}{
		"id":     c.ID,
		"score":  c.Score,
		"labels": labels,
	}

	rctxMap := map[string]interface{}{}
	if rctx != nil {
		rctxMap["category"] = rctx.Category
		rctxMap["params"] = rctx.Params
	}

	return map[string]interface{}{
		"item":  item,
		"label": labels,
		"rctx":  rctxMap,
	}
}

var _ Filter = (*ExprFilter)(nil)
