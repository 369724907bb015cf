package core

// EmbeddingRecord 是候选池中的一条记录：物品标识 + 预计算的 Embedding 向量。
// 同一个候选池内的向量维度一致；不同候选池之间不要求一致。
type EmbeddingRecord struct {
	ID        string    `json:"id"`
	Embedding []float64 `json:"embedding"`
}

// Candidate 是打分链路中的承载结构：在一次请求内由 EmbeddingRecord 派生，
// 请求结束即丢弃，不会写回缓存。Labels 用于解释与观测。
type Candidate struct {
	ID        string
	Score     float64
	Embedding []float64
	Labels    map[string]Label
}

// NewCandidate 从一条候选记录构造 Candidate。
// Embedding 直接引用记录中的切片，链路中的节点不得修改它。
func NewCandidate(rec EmbeddingRecord) *Candidate {
	return &Candidate{
		ID:        rec.ID,
		Embedding: rec.Embedding,
		Labels:    make(map[string]Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (c *Candidate) PutLabel(key string, lbl Label) {
	if c.Labels == nil {
		c.Labels = make(map[string]Label)
	}
	if old, ok := c.Labels[key]; ok {
		c.Labels[key] = MergeLabel(old, lbl)
		return
	}
	c.Labels[key] = lbl
}
