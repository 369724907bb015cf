// Package recommend 提供推荐入口：缓存解析 → prompt 构造 → 查询向量化 → 打分链路。
package recommend

import (
	"context"

	"github.com/recflow/recflow/cache"
	"github.com/recflow/recflow/core"
	"github.com/recflow/recflow/filter"
	"github.com/recflow/recflow/pipeline"
	"github.com/recflow/recflow/rank"
	"github.com/recflow/recflow/rerank"
)

// Recommender 编排一次完整的推荐：
//
//	类目校验 → 候选池解析（缓存，miss 时走 Loader）→ prompt 构造
//	→ QueryEmbedder 向量化 → 打分/过滤/截断 → 有序 ID 列表
//
// 错误语义：
//   - 未注册的类目在任何外部调用之前即以 ErrInvalidCategory 拒绝
//   - Loader / Embedder 的失败统一坍缩为 ErrInternal，不向调用方泄露上游细节
//   - 任何一步失败都不产生部分结果
type Recommender struct {
	// Cache 候选池缓存（必填）
	Cache *cache.EmbeddingCache

	// Loader 候选加载器，缓存 miss 时调用（必填）
	Loader core.CandidateLoader

	// Embedder 查询向量化（必填）
	Embedder core.QueryEmbedder

	// Categories 类目到候选池 key 的映射表。
	// 类目名与池 key 可以不同（某个类目别名到另一个命名的集合）。
	Categories map[string]string

	// K 返回条数，零值时使用 rank.DefaultTopK
	K int

	// Filters 可选的候选过滤器（在打分之后、截断之前生效）
	Filters []filter.Filter
}

// Recommend 执行一次推荐，返回按相似度降序排列的物品 ID（长度不超过 K）。
func (r *Recommender) Recommend(ctx context.Context, rctx *core.RecommendContext) (*core.Result, error) {
	poolKey, ok := r.Categories[rctx.Category]
	if !ok {
		return nil, core.ErrInvalidCategory
	}

	k := r.K
	if k <= 0 {
		k = rank.DefaultTopK
	}

	records, err := r.Cache.Get(ctx, poolKey, r.Loader)
	if err != nil {
		return nil, core.ErrInternal
	}

	prompt := BuildPrompt(k, rctx.Category, rctx.CategoryPreferences())
	query, err := r.Embedder.Embed(ctx, prompt)
	if err != nil {
		return nil, core.ErrInternal
	}
	rctx.QueryVector = query

	candidates := make([]*core.Candidate, 0, len(records))
	for _, rec := range records {
		candidates = append(candidates, core.NewCandidate(rec))
	}

	ranked, err := r.scoring(k).Run(ctx, rctx, candidates)
	if err != nil {
		return nil, core.ErrInternal
	}

	ids := make([]string, len(ranked))
	for i, c := range ranked {
		ids[i] = c.ID
	}
	return &core.Result{IDs: ids}, nil
}

// scoring 组装打分链路：相似度打分 →（可选）过滤 → TopK 截断。
func (r *Recommender) scoring(k int) *pipeline.Pipeline {
	nodes := []pipeline.Node{&rank.SimilarityNode{}}
	if len(r.Filters) > 0 {
		nodes = append(nodes, &filter.Node{Filters: r.Filters})
	}
	nodes = append(nodes, &rerank.TopKNode{K: k})
	return &pipeline.Pipeline{Nodes: nodes}
}
