package rank

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/digkit/core"
)

func scoredArtist(id, name string, pop int, features ...float64) *core.Artist {
	a := core.NewArtist(id, name)
	a.Popularity = pop
	a.Features = features
	return a
}

func TestGenreNode_Process(t *testing.T) {
	// 词表 [djent, metal]，喜欢的 Gojira 行 = [0, 1]
	artists := []*core.Artist{
		scoredArtist("a1", "Gojira", 80, 0, 1),
		scoredArtist("a2", "MetalBand", 40, 0, 1),  // 同向，sim=1
		scoredArtist("a3", "DjentBand", 20, 1, 0),  // 正交，sim=0
		scoredArtist("a4", "MixedBand", 10, 1, 1),  // sim=1/sqrt(2)
	}

	n := &GenreNode{UndergroundWeight: 0.5}
	rctx := &core.RecommendContext{UserLikes: []string{"Gojira"}}

	out, err := n.Process(context.Background(), rctx, artists)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("got %d artists, want 4", len(out))
	}

	byID := make(map[string]*core.Artist)
	for _, a := range out {
		byID[a.ID] = a
	}

	// maxPop=80
	checks := []struct {
		id      string
		sim     float64
		popNorm float64
	}{
		{"a1", 1, 1},
		{"a2", 1, 0.5},
		{"a3", 0, 0.25},
		{"a4", 1 / math.Sqrt2, 0.125},
	}
	for _, c := range checks {
		a := byID[c.id]
		if math.Abs(a.Similarity-c.sim) > 1e-9 {
			t.Errorf("%s Similarity = %v, want %v", c.id, a.Similarity, c.sim)
		}
		if math.Abs(a.PopNorm-c.popNorm) > 1e-9 {
			t.Errorf("%s PopNorm = %v, want %v", c.id, a.PopNorm, c.popNorm)
		}
		wantFinal := 0.5*c.sim + 0.5*(1-c.popNorm)
		if math.Abs(a.FinalScore-wantFinal) > 1e-9 {
			t.Errorf("%s FinalScore = %v, want %v", c.id, a.FinalScore, wantFinal)
		}
	}

	// 降序
	for i := 1; i < len(out); i++ {
		if out[i-1].FinalScore < out[i].FinalScore {
			t.Errorf("not sorted desc at %d: %v < %v", i, out[i-1].FinalScore, out[i].FinalScore)
		}
	}
}

func TestGenreNode_StableOnTies(t *testing.T) {
	// 两个候选特征、热度完全相同，同分时保持插入序
	artists := []*core.Artist{
		scoredArtist("a1", "Seed", 50, 1),
		scoredArtist("a2", "First", 30, 1),
		scoredArtist("a3", "Second", 30, 1),
	}
	n := &GenreNode{}
	rctx := &core.RecommendContext{UserLikes: []string{"Seed"}}

	out, err := n.Process(context.Background(), rctx, artists)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	posFirst, posSecond := -1, -1
	for i, a := range out {
		switch a.ID {
		case "a2":
			posFirst = i
		case "a3":
			posSecond = i
		}
	}
	if posFirst > posSecond {
		t.Errorf("tied artists reordered: a2 at %d, a3 at %d", posFirst, posSecond)
	}
}

func TestGenreNode_NoLikedMatch(t *testing.T) {
	artists := []*core.Artist{
		scoredArtist("a1", "A", 10, 1),
	}
	n := &GenreNode{}
	rctx := &core.RecommendContext{UserLikes: []string{"Unknown Band"}}

	out, err := n.Process(context.Background(), rctx, artists)
	if err != nil {
		t.Fatalf("no liked match must not be an error, got %v", err)
	}
	if len(out) != 0 {
		t.Errorf("got %d artists, want 0", len(out))
	}
}

func TestGenreNode_CaseInsensitiveLikedMatch(t *testing.T) {
	artists := []*core.Artist{
		scoredArtist("a1", "Gojira", 50, 1),
		scoredArtist("a2", "Other", 10, 1),
	}
	n := &GenreNode{}
	rctx := &core.RecommendContext{UserLikes: []string{"  gOjIrA "}}

	out, err := n.Process(context.Background(), rctx, artists)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 2 {
		t.Errorf("liked name should match case-insensitively, got %d artists", len(out))
	}
}

func TestGenreNode_WeightFromParams(t *testing.T) {
	artists := []*core.Artist{
		scoredArtist("a1", "Seed", 100, 1),
		scoredArtist("a2", "Cand", 0, 0),
	}
	n := &GenreNode{UndergroundWeight: 0}
	rctx := &core.RecommendContext{
		UserLikes: []string{"Seed"},
		Params:    map[string]any{"underground_weight": 1.0},
	}

	out, err := n.Process(context.Background(), rctx, artists)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	// w=1 时只看反流行度：a2(pop=0) 必须排在 a1(pop=100) 前面
	if out[0].ID != "a2" {
		t.Errorf("with w=1 the least popular artist should rank first, got %s", out[0].ID)
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 1}, []float64{1, 1}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
		{"both zero", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cosine(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosine(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
