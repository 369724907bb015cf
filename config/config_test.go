package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/recflow/recflow/core"
)

const testYAML = `
recommender:
  top_k: 2
  cache_ttl: 300
  categories:
    pets: pets
    movies: films
  filters:
    - "item.score < -1.5"
  store:
    type: memory
  loader:
    type: store
  embedder:
    type: hash
    dimension: 2
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recflow.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rc := cfg.Recommender
	if rc.TopK != 2 {
		t.Errorf("TopK = %d, want 2", rc.TopK)
	}
	if rc.CacheTTL != 300 {
		t.Errorf("CacheTTL = %d, want 300", rc.CacheTTL)
	}
	if rc.Categories["movies"] != "films" {
		t.Errorf("Categories[movies] = %q, want films", rc.Categories["movies"])
	}
	if len(rc.Filters) != 1 {
		t.Errorf("Filters = %v, want 1 expression", rc.Filters)
	}
}

func TestConfig_Build(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	r, closer, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer closer()

	// 装配出的 Recommender 端到端可用（候选池为空时返回空结果）
	result, err := r.Recommend(context.Background(), &core.RecommendContext{Category: "pets"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(result.IDs) != 0 {
		t.Errorf("Recommend() = %v, want empty for empty pool", result.IDs)
	}

	if _, err := r.Recommend(context.Background(), &core.RecommendContext{Category: "fish"}); !core.IsInvalidCategory(err) {
		t.Errorf("Recommend(fish) error = %v, want INVALID_CATEGORY", err)
	}
}

func TestConfig_BuildErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no categories", "recommender:\n  top_k: 5\n"},
		{"bad store type", "recommender:\n  categories: {a: a}\n  store:\n    type: dynamo\n"},
		{"bad filter", "recommender:\n  categories: {a: a}\n  filters: [\"item.score >=\"]\n"},
		{"http embedder without base_url", "recommender:\n  categories: {a: a}\n  embedder:\n    type: http\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.yaml))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if _, _, err := cfg.Build(); err == nil {
				t.Error("Build() expected error")
			}
		})
	}
}
