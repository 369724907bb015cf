// Package recflow 是一个基于 Embedding 检索的推荐库（Recommendation Flow）。
//
// 设计要点：
// - 检索即推荐：候选池的预计算向量与查询向量做余弦相似度，线性扫描取 TopK
// - 缓存优先：候选池经过共享时效窗口的进程内缓存，miss 时才回源加载
// - Pipeline 可组合：打分/过滤/截断都是可插拔的 Node，自定义 Node 即可扩展
package recflow

import "github.com/recflow/recflow/pipeline"

// 轻量 facade：便于用户直接 import "recflow" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRank        = pipeline.KindRank
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
