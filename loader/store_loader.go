// Package loader 提供 core.CandidateLoader 的实现：从不同后端取回候选池的原始
// 向量记录，并统一过滤掉不携带有效 Embedding 的记录。
package loader

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/recflow/recflow/core"
)

// DefaultKeyPrefix 是候选池在存储中的默认 key 前缀。
const DefaultKeyPrefix = "emb:"

// StoreLoader 从 core.KeyValueStore 加载候选池。
//
// 存储布局：一个候选池对应一个 Hash，key 为 "emb:{pool}"，
// field 为物品 ID，value 为 JSON：{"embedding": [0.1, 0.2, ...]}。
//
// embedding 字段缺失或为空的记录、无法解析的记录会被静默跳过——
// 这是候选筛选的正常条件，不是错误；只有存储本身不可达才返回错误。
type StoreLoader struct {
	Store core.KeyValueStore

	// KeyPrefix 存储 key 前缀，零值时使用 DefaultKeyPrefix
	KeyPrefix string
}

// storeRecord 是存储中单条记录的 JSON 形态，只关心 embedding 字段。
type storeRecord struct {
	Embedding []float64 `json:"embedding"`
}

func (l *StoreLoader) Fetch(ctx context.Context, key string) ([]core.EmbeddingRecord, error) {
	prefix := l.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	raw, err := l.Store.HGetAll(ctx, prefix+key)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleLoader, core.ErrorCodeUpstreamLoad,
			fmt.Sprintf("loader: fetch pool %q from %s: %v", key, l.Store.Name(), err))
	}

	records := make([]core.EmbeddingRecord, 0, len(raw))
	for id, data := range raw {
		var rec storeRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		if len(rec.Embedding) == 0 {
			continue
		}
		records = append(records, core.EmbeddingRecord{ID: id, Embedding: rec.Embedding})
	}
	return records, nil
}

var _ core.CandidateLoader = (*StoreLoader)(nil)
