package core

import "context"

// CandidateLoader 是候选池加载的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（loader）实现
//   - 领域层只消费它的输出形态：带有效 Embedding 的记录列表
//
// 约定：
//   - 实现方必须过滤掉不携带数值向量字段的上游记录（正常筛选条件，不是错误）
//   - 返回记录的顺序不承载语义
//   - 上游不可达等失败以错误返回，由调用方决定如何向外暴露
//
// 实现：
//   - loader.StoreLoader：从 core.KeyValueStore 读取 JSON 记录
//   - loader.FeastLoader：从 Feast 在线特征存储读取 Embedding 特征
type CandidateLoader interface {
	// Fetch 加载一个候选池 key 对应的全部有效记录
	Fetch(ctx context.Context, key string) ([]EmbeddingRecord, error)
}

// LoaderFunc 把普通函数适配为 CandidateLoader，测试与原型中常用。
type LoaderFunc func(ctx context.Context, key string) ([]EmbeddingRecord, error)

func (f LoaderFunc) Fetch(ctx context.Context, key string) ([]EmbeddingRecord, error) {
	return f(ctx, key)
}
