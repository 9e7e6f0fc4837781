package filter

import (
	"context"
	"testing"

	"github.com/rushteam/digkit/core"
)

func candidate(id, name string, pop int, sim float64) *core.Artist {
	a := core.NewArtist(id, name)
	a.Popularity = pop
	a.Similarity = sim
	return a
}

func TestFilterNode_DefaultChain(t *testing.T) {
	rctx := &core.RecommendContext{UserLikes: []string{"Gojira"}}

	artists := []*core.Artist{
		candidate("a1", "Gojira", 40, 0.9),     // 用户已喜欢，踢掉
		candidate("a2", "TooPopular", 80, 0.9), // 超过内置上限 55，踢掉
		candidate("a3", "NoOverlap", 30, 0),    // 无流派交集，踢掉
		candidate("a4", "Keeper", 54, 0.4),
		candidate("a5", "Boundary", 55, 0.1), // 上限是含的，55 保留
	}

	out, err := Default().Process(context.Background(), rctx, artists)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	wantIDs := []string{"a4", "a5"}
	if len(out) != len(wantIDs) {
		t.Fatalf("got %d artists, want %d: %v", len(out), len(wantIDs), out)
	}
	for i, id := range wantIDs {
		if out[i].ID != id {
			t.Errorf("out[%d].ID = %s, want %s", i, out[i].ID, id)
		}
	}
}

func TestFilterNode_LabelsFilteredReason(t *testing.T) {
	rctx := &core.RecommendContext{}
	popular := candidate("a1", "A", 90, 0.5)

	out, err := Default().Process(context.Background(), rctx, []*core.Artist{popular})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("popular artist should be filtered")
	}

	l, ok := popular.Labels["filtered"]
	if !ok {
		t.Fatalf("filtered artist should carry a filtered label")
	}
	if l.Source != "filter.popularity_ceiling" {
		t.Errorf("filtered label source = %q, want filter.popularity_ceiling", l.Source)
	}
}

func TestFilterNode_FixedOrder(t *testing.T) {
	// 既超上限又是用户已喜欢的：固定顺序下流行度过滤先命中
	rctx := &core.RecommendContext{UserLikes: []string{"Both"}}
	both := candidate("a1", "Both", 99, 0.8)

	_, err := Default().Process(context.Background(), rctx, []*core.Artist{both})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got := both.Labels["filtered"].Source; got != "filter.popularity_ceiling" {
		t.Errorf("first matching filter = %q, want filter.popularity_ceiling", got)
	}
}

func TestPopularityCeiling_CustomMax(t *testing.T) {
	f := &PopularityCeiling{Max: 30}

	tests := []struct {
		pop  int
		want bool
	}{
		{30, false},
		{31, true},
		{0, false},
	}
	for _, tt := range tests {
		got, err := f.ShouldFilter(context.Background(), nil, candidate("a", "A", tt.pop, 1))
		if err != nil {
			t.Fatalf("ShouldFilter() error = %v", err)
		}
		if got != tt.want {
			t.Errorf("pop=%d: ShouldFilter = %v, want %v", tt.pop, got, tt.want)
		}
	}
}

func TestLikedNames_ExtraNames(t *testing.T) {
	f := &LikedNames{ExtraNames: []string{" Blocked Band "}}
	rctx := &core.RecommendContext{}

	got, err := f.ShouldFilter(context.Background(), rctx, candidate("a", "blocked band", 10, 1))
	if err != nil {
		t.Fatalf("ShouldFilter() error = %v", err)
	}
	if !got {
		t.Errorf("extra name should match case-insensitively with trimming")
	}
}

func TestDSLFilter(t *testing.T) {
	rctx := &core.RecommendContext{Scene: "discover"}

	a := candidate("a1", "A", 48, 0.3)
	a.Genres = []string{"nu metal"}

	tests := []struct {
		expr string
		want bool
	}{
		{`"nu metal" in artist.genres`, true},
		{`artist.popularity > 50`, false},
		{`rctx.scene == "discover" && artist.similarity < 0.5`, true},
		{``, false}, // 空表达式不过滤
	}
	for _, tt := range tests {
		f := &DSLFilter{Expr: tt.expr}
		got, err := f.ShouldFilter(context.Background(), rctx, a)
		if err != nil {
			t.Fatalf("ShouldFilter(%q) error = %v", tt.expr, err)
		}
		if got != tt.want {
			t.Errorf("ShouldFilter(%q) = %v, want %v", tt.expr, got, tt.want)
		}
	}
}

type staticSeen struct {
	seen map[string]bool
}

func (s *staticSeen) Seen(_ context.Context, _ string, artistID string) (bool, error) {
	return s.seen[artistID], nil
}

func TestSeenFilter(t *testing.T) {
	f := &SeenFilter{Checker: &staticSeen{seen: map[string]bool{"a1": true}}}

	withUser := &core.RecommendContext{Params: map[string]any{"user_id": "u1"}}
	got, err := f.ShouldFilter(context.Background(), withUser, candidate("a1", "A", 10, 1))
	if err != nil {
		t.Fatalf("ShouldFilter() error = %v", err)
	}
	if !got {
		t.Errorf("seen artist should be filtered")
	}

	got, err = f.ShouldFilter(context.Background(), withUser, candidate("a2", "B", 10, 1))
	if err != nil {
		t.Fatalf("ShouldFilter() error = %v", err)
	}
	if got {
		t.Errorf("unseen artist should pass")
	}

	// 匿名请求直接放行
	anon := &core.RecommendContext{}
	got, err = f.ShouldFilter(context.Background(), anon, candidate("a1", "A", 10, 1))
	if err != nil {
		t.Fatalf("ShouldFilter() error = %v", err)
	}
	if got {
		t.Errorf("anonymous request must bypass the seen filter")
	}
}
