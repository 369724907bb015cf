// Package vectormath 提供纯函数式的向量数值计算，无状态、确定性。
package vectormath

import (
	"math"

	"github.com/recflow/recflow/core"
)

// epsilon 在分母为零（全零向量）时替代分母，避免除零。
const epsilon = 1e-12

// CosineSimilarity 计算两个等长向量的余弦相似度。
//
// 一次遍历同时累积点积与两个范数，返回 dot / (|a| * |b|)。
// 结果名义上落在 [-1, 1]，但不做截断；全零向量通过 epsilon 兜底返回有限值。
// 两个向量长度不一致时返回 core.ErrDimensionMismatch。
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, core.ErrDimensionMismatch
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		denom = epsilon
	}
	return dot / denom, nil
}
