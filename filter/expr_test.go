package filter

import (
	"context"
	"testing"

	"github.com/recflow/recflow/core"
)

func TestExprFilter_ShouldFilter(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		score float64
		want  bool
	}{
		{"drop low score", "item.score <= 0.1", 0.05, true},
		{"keep high score", "item.score <= 0.1", 0.9, false},
		{"category match", `rctx.category == "pets" && item.score < 0.2`, 0.1, true},
		{"category mismatch", `rctx.category == "movies" && item.score < 0.2`, 0.1, false},
	}

	rctx := &core.RecommendContext{Category: "pets"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewExprFilter(tt.expr)
			if err != nil {
				t.Fatalf("NewExprFilter() error = %v", err)
			}
			c := core.NewCandidate(core.EmbeddingRecord{ID: "x", Embedding: []float64{1}})
			c.Score = tt.score

			got, err := f.ShouldFilter(context.Background(), rctx, c)
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewExprFilter_CompileError(t *testing.T) {
	if _, err := NewExprFilter("item.score >="); err == nil {
		t.Fatal("NewExprFilter() expected compile error")
	}
}

func TestExprFilter_NonBooleanResult(t *testing.T) {
	f, err := NewExprFilter("item.score + 1.0")
	if err != nil {
		t.Fatalf("NewExprFilter() error = %v", err)
	}
	c := core.NewCandidate(core.EmbeddingRecord{ID: "x"})
	if _, err := f.ShouldFilter(context.Background(), nil, c); err == nil {
		t.Fatal("ShouldFilter() expected error for non-boolean expression")
	}
}

func TestNode_DropsAndLabels(t *testing.T) {
	f, err := NewExprFilter("item.score < 0.5")
	if err != nil {
		t.Fatalf("NewExprFilter() error = %v", err)
	}
	node := &Node{Filters: []Filter{f}}

	low := core.NewCandidate(core.EmbeddingRecord{ID: "low"})
	low.Score = 0.2
	high := core.NewCandidate(core.EmbeddingRecord{ID: "high"})
	high.Score = 0.8

	out, err := node.Process(context.Background(), nil, []*core.Candidate{low, high})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 || out[0].ID != "high" {
		t.Fatalf("Process() = %v, want only high", out)
	}
	if lbl, ok := low.Labels["filtered"]; !ok || lbl.Source != "filter.expr" {
		t.Errorf("dropped candidate missing filtered label, got %v", low.Labels)
	}
}
