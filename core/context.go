package core

// RecommendContext 承载一次推荐请求的输入与请求级状态，贯穿整个打分链路透传。
type RecommendContext struct {
	// Category 请求的类目（如 "pets"）。必须在 Recommender 的类目表中注册，
	// 否则请求在任何外部调用之前即被拒绝。
	Category string

	// Preferences 按类目组织的偏好词列表。
	// 只有与 Category 同名的一组会被拼进查询 prompt，其余类目的偏好被忽略。
	Preferences map[string][]string

	// QueryVector 查询向量，由 Recommender 在向量化之后填入，
	// 供打分节点读取。调用方不需要也不应该预先设置。
	QueryVector []float64

	// Params 请求级上下文参数（可选），供自定义节点或过滤表达式使用。
	Params map[string]any
}

// CategoryPreferences 返回当前类目对应的偏好词列表；没有则返回 nil。
func (rctx *RecommendContext) CategoryPreferences() []string {
	if rctx.Preferences == nil {
		return nil
	}
	return rctx.Preferences[rctx.Category]
}

// Result 是一次推荐的最终产出：按相似度降序排列的物品标识，长度不超过 TopK。
type Result struct {
	IDs []string
}
