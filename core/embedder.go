package core

import "context"

// QueryEmbedder 是查询向量化的领域接口。
//
// 约定：
//   - 每次调用只返回一个固定维度的向量（整个 prompt 对应一个向量）
//   - 返回向量的维度需要与候选池的维度一致，打分才会生效；
//     维度不一致的候选会被打分节点剔除，而不是报错
//
// 实现：
//   - embed.HTTPEmbedder：OpenAI 风格 /embeddings 接口客户端
//   - embed.HashEmbedder：确定性哈希向量，用于测试/原型
type QueryEmbedder interface {
	// Embed 把一段查询文本转为单个向量
	Embed(ctx context.Context, prompt string) ([]float64, error)
}

// EmbedderFunc 把普通函数适配为 QueryEmbedder。
type EmbedderFunc func(ctx context.Context, prompt string) ([]float64, error)

func (f EmbedderFunc) Embed(ctx context.Context, prompt string) ([]float64, error) {
	return f(ctx, prompt)
}
