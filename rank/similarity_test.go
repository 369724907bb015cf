package rank

import (
	"context"
	"reflect"
	"testing"

	"github.com/recflow/recflow/core"
)

func TestTopK_Order(t *testing.T) {
	query := []float64{1, 0}
	records := []core.EmbeddingRecord{
		{ID: "high", Embedding: []float64{0.9, 0.1}},
		{ID: "low", Embedding: []float64{0.1, 0.9}},
		{ID: "mid", Embedding: []float64{0.5, 0.5}},
	}

	got := TopK(query, records, 2)
	want := []string{"high", "mid"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopK() = %v, want %v", got, want)
	}
}

func TestTopK_Size(t *testing.T) {
	query := []float64{1, 0}
	records := []core.EmbeddingRecord{
		{ID: "a", Embedding: []float64{1, 0}},
		{ID: "b", Embedding: []float64{0, 1}},
		{ID: "c", Embedding: []float64{0.7, 0.7}},
	}

	tests := []struct {
		name string
		k    int
		want int
	}{
		{"k smaller than pool", 2, 2},
		{"k equals pool", 3, 3},
		{"k larger than pool", 10, 3},
		{"k zero falls back to default", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopK(query, records, tt.k)
			if len(got) != tt.want {
				t.Errorf("TopK(k=%d) returned %d ids, want %d", tt.k, len(got), tt.want)
			}
		})
	}
}

func TestTopK_SkipsDimensionMismatch(t *testing.T) {
	query := []float64{1, 0}
	records := []core.EmbeddingRecord{
		{ID: "ok", Embedding: []float64{1, 0}},
		{ID: "short", Embedding: []float64{1}},
		{ID: "long", Embedding: []float64{1, 0, 0}},
		{ID: "empty"},
	}

	got := TopK(query, records, 5)
	want := []string{"ok"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopK() = %v, want %v (mismatched dims must be excluded, not fatal)", got, want)
	}
}

func TestTopK_StableOnTies(t *testing.T) {
	query := []float64{1, 0}
	// 三个与 query 完全同向的候选，分数并列，必须保持输入顺序
	records := []core.EmbeddingRecord{
		{ID: "first", Embedding: []float64{2, 0}},
		{ID: "second", Embedding: []float64{1, 0}},
		{ID: "third", Embedding: []float64{5, 0}},
	}

	got := TopK(query, records, 3)
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopK() = %v, want input order %v on ties", got, want)
	}
}

func TestSimilarityNode_Process(t *testing.T) {
	rctx := &core.RecommendContext{QueryVector: []float64{1, 0}}
	candidates := []*core.Candidate{
		core.NewCandidate(core.EmbeddingRecord{ID: "low", Embedding: []float64{0, 1}}),
		core.NewCandidate(core.EmbeddingRecord{ID: "high", Embedding: []float64{1, 0}}),
		core.NewCandidate(core.EmbeddingRecord{ID: "bad", Embedding: []float64{1, 0, 0}}),
		core.NewCandidate(core.EmbeddingRecord{ID: "mid", Embedding: []float64{0.7, 0.7}}),
	}

	node := &SimilarityNode{}
	out, err := node.Process(context.Background(), rctx, candidates)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	ids := make([]string, len(out))
	for i, c := range out {
		ids[i] = c.ID
	}
	want := []string{"high", "mid", "low"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Process() order = %v, want %v", ids, want)
	}

	for _, c := range out {
		if lbl, ok := c.Labels["score_metric"]; !ok || lbl.Value != "cosine" {
			t.Errorf("candidate %s missing score_metric label", c.ID)
		}
	}
}
