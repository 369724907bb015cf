package embed

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/recflow/recflow/core"
)

// DefaultHashDim 是 HashEmbedder 的默认向量维度。
const DefaultHashDim = 128

// HashEmbedder 是确定性的本地向量化实现：以文本哈希为种子生成单位向量。
// 相同文本永远得到相同向量，适合测试、原型与离线演练；
// 不具备语义相似性，生产环境应使用 HTTPEmbedder 接真实模型。
type HashEmbedder struct {
	// Dim 向量维度，零值时使用 DefaultHashDim
	Dim int
}

func (e *HashEmbedder) Embed(_ context.Context, prompt string) ([]float64, error) {
	dim := e.Dim
	if dim <= 0 {
		dim = DefaultHashDim
	}

	h := fnv.New64a()
	h.Write([]byte(prompt))
	r := rand.New(rand.NewSource(int64(h.Sum64())))

	vec := make([]float64, dim)
	var norm float64
	for i := range vec {
		vec[i] = r.NormFloat64()
		norm += vec[i] * vec[i]
	}

	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

var _ core.QueryEmbedder = (*HashEmbedder)(nil)
