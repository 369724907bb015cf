package embed

import (
	"context"
	"math"
	"reflect"
	"testing"
)

func TestHashEmbedder_Deterministic(t *testing.T) {
	e := &HashEmbedder{Dim: 16}
	ctx := context.Background()

	a, err := e.Embed(ctx, "Recommend me 5 pets")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	b, err := e.Embed(ctx, "Recommend me 5 pets")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("Embed() must be deterministic for identical prompts")
	}

	c, err := e.Embed(ctx, "Recommend me 5 movies")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if reflect.DeepEqual(a, c) {
		t.Error("Embed() should differ for different prompts")
	}
}

func TestHashEmbedder_DimensionAndNorm(t *testing.T) {
	e := &HashEmbedder{Dim: 32}
	vec, err := e.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(vec) != 32 {
		t.Fatalf("Embed() dim = %d, want 32", len(vec))
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if math.Abs(math.Sqrt(norm)-1) > 1e-9 {
		t.Errorf("Embed() norm = %v, want unit vector", math.Sqrt(norm))
	}
}

func TestHashEmbedder_DefaultDim(t *testing.T) {
	e := &HashEmbedder{}
	vec, err := e.Embed(context.Background(), "x")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(vec) != DefaultHashDim {
		t.Errorf("Embed() dim = %d, want %d", len(vec), DefaultHashDim)
	}
}
