package loader

import (
	"context"
	"encoding/json"
	"fmt"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"

	"github.com/recflow/recflow/core"
)

// DefaultIDKeyPrefix 是候选 ID 清单在存储中的默认 key 前缀。
const DefaultIDKeyPrefix = "ids:"

// FeastLoader 从 Feast 在线特征存储加载候选池的 Embedding。
//
// 工作方式：
//  1. 从 IDStore 读取 "ids:{pool}" 下的候选 ID 清单（JSON 字符串数组），
//     清单通常由离线任务定期写入
//  2. 以 ID 清单为实体行，从 Feast 按 Feature（如 "item_embeddings:embedding"）
//     批量取回 DoubleList/FloatList 特征
//  3. 特征缺失的实体被静默跳过（正常筛选条件，不是错误）
//
// 使用官方 SDK (github.com/feast-dev/feast/sdk/go) 的 gRPC 客户端。
type FeastLoader struct {
	client *feastsdk.GrpcClient

	// Project Feast 项目名称
	Project string

	// Feature Embedding 特征引用，例如 "item_embeddings:embedding"
	Feature string

	// EntityKey 实体主键名称，例如 "item_id"
	EntityKey string

	// IDStore 候选 ID 清单所在的存储
	IDStore core.Store

	// IDKeyPrefix ID 清单 key 前缀，零值时使用 DefaultIDKeyPrefix
	IDKeyPrefix string
}

// NewFeastLoader 连接 Feast Feature Server 并返回 FeastLoader。
func NewFeastLoader(host string, port int, project, feature, entityKey string, idStore core.Store) (*FeastLoader, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("feast grpc client: %w", err)
	}
	return &FeastLoader{
		client:    client,
		Project:   project,
		Feature:   feature,
		EntityKey: entityKey,
		IDStore:   idStore,
	}, nil
}

func (l *FeastLoader) Fetch(ctx context.Context, key string) ([]core.EmbeddingRecord, error) {
	ids, err := l.poolIDs(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	entities := make([]feastsdk.Row, len(ids))
	for i, id := range ids {
		entities[i] = feastsdk.Row{l.EntityKey: feastsdk.StrVal(id)}
	}

	resp, err := l.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: []string{l.Feature},
		Entities: entities,
		Project:  l.Project,
	})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleLoader, core.ErrorCodeUpstreamLoad,
			fmt.Sprintf("loader: feast get online features for pool %q: %v", key, err))
	}

	rows := resp.Rows()
	records := make([]core.EmbeddingRecord, 0, len(rows))
	for i, row := range rows {
		if i >= len(ids) {
			break
		}
		emb := embeddingFromValue(row[l.Feature])
		if len(emb) == 0 {
			continue
		}
		records = append(records, core.EmbeddingRecord{ID: ids[i], Embedding: emb})
	}
	return records, nil
}

// poolIDs 读取候选池的 ID 清单。
func (l *FeastLoader) poolIDs(ctx context.Context, key string) ([]string, error) {
	prefix := l.IDKeyPrefix
	if prefix == "" {
		prefix = DefaultIDKeyPrefix
	}

	data, err := l.IDStore.Get(ctx, prefix+key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, core.NewDomainError(core.ModuleLoader, core.ErrorCodeUpstreamLoad,
			fmt.Sprintf("loader: read id list for pool %q: %v", key, err))
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, core.NewDomainError(core.ModuleLoader, core.ErrorCodeUpstreamLoad,
			fmt.Sprintf("loader: decode id list for pool %q: %v", key, err))
	}
	return ids, nil
}

// embeddingFromValue 从 Feast Value 中提取向量；支持 DoubleList 与 FloatList。
func embeddingFromValue(val *feasttypes.Value) []float64 {
	if val == nil {
		return nil
	}
	if dl := val.GetDoubleListVal(); dl != nil && len(dl.GetVal()) > 0 {
		return dl.GetVal()
	}
	if fl := val.GetFloatListVal(); fl != nil && len(fl.GetVal()) > 0 {
		src := fl.GetVal()
		out := make([]float64, len(src))
		for i, v := range src {
			out[i] = float64(v)
		}
		return out
	}
	return nil
}

var _ core.CandidateLoader = (*FeastLoader)(nil)
