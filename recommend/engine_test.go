package recommend

import (
	"context"
	"strings"
	"testing"

	"github.com/rushteam/digkit/catalog"
	"github.com/rushteam/digkit/core"
)

func fixtureCatalog() *catalog.Memory {
	m := catalog.NewMemory(nil, nil)

	add := func(id, name string, pop int, genres []string, related ...string) {
		a := core.NewArtist(id, name)
		a.Popularity = pop
		a.Genres = genres
		m.Add(a, related...)
	}

	add("a1", "Gojira", 72, []string{"progressive metal", "death metal"}, "a3", "a4")
	add("a2", "Meshuggah", 65, []string{"djent", "progressive metal"}, "a5", "a6")
	add("a3", "Hypno5e", 38, []string{"progressive metal", "post-metal"})
	add("a4", "Klone", 41, []string{"progressive metal", "progressive rock"})
	add("a5", "Vildhjarta", 35, []string{"djent", "progressive metal"})
	add("a6", "Humanity's Last Breath", 44, []string{"djent", "deathcore"})
	add("a7", "Oddland", 18, []string{"progressive metal"})
	add("a8", "Sarmat", 12, []string{"death metal", "jazz fusion"})
	add("a9", "Polyphia", 68, []string{"progressive rock", "math rock"})

	return m
}

func TestEngine_Discover(t *testing.T) {
	engine := &Engine{Catalog: fixtureCatalog()}
	likes := []string{"Gojira", "Meshuggah"}

	ranked, err := engine.Discover(context.Background(), likes, Options{
		TopK:              10,
		UndergroundWeight: 0.3,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(ranked) == 0 {
		t.Fatalf("expected recommendations, got none")
	}
	if len(ranked) > 10 {
		t.Fatalf("got %d artists, want <= 10", len(ranked))
	}

	likedSet := map[string]struct{}{"gojira": {}, "meshuggah": {}}
	for i, a := range ranked {
		if _, ok := likedSet[strings.ToLower(a.Name)]; ok {
			t.Errorf("liked artist %s must not appear in results", a.Name)
		}
		if a.Popularity > 55 {
			t.Errorf("%s popularity %d exceeds the built-in ceiling", a.Name, a.Popularity)
		}
		if a.Similarity <= 0 {
			t.Errorf("%s similarity %v should be positive after filtering", a.Name, a.Similarity)
		}
		if i > 0 && ranked[i-1].FinalScore < a.FinalScore {
			t.Errorf("not sorted desc at %d: %v < %v", i, ranked[i-1].FinalScore, a.FinalScore)
		}
	}
}

func TestEngine_DiscoverDeterministic(t *testing.T) {
	likes := []string{"Gojira", "Meshuggah"}

	run := func() []string {
		engine := &Engine{Catalog: fixtureCatalog(), MaxConcurrent: 4}
		ranked, err := engine.Discover(context.Background(), likes, Options{TopK: 10, UndergroundWeight: 0.3})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}
		ids := make([]string, len(ranked))
		for i, a := range ranked {
			ids[i] = a.ID
		}
		return ids
	}

	first := run()
	second := run()
	if strings.Join(first, ",") != strings.Join(second, ",") {
		t.Errorf("runs differ: %v vs %v", first, second)
	}
}

func TestEngine_DiscoverNoResolvableLikes(t *testing.T) {
	engine := &Engine{Catalog: fixtureCatalog()}

	ranked, err := engine.Discover(context.Background(), []string{"Totally Unknown"}, Options{})
	if err != nil {
		t.Fatalf("unresolvable likes must not be an error, got %v", err)
	}
	if len(ranked) != 0 {
		t.Errorf("got %d artists, want 0", len(ranked))
	}
}

func TestEngine_RecommendOnExistingTable(t *testing.T) {
	engine := &Engine{Catalog: fixtureCatalog()}
	likes := []string{"Gojira"}

	table, err := engine.Expand(context.Background(), likes)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(table) == 0 {
		t.Fatalf("expected expanded table")
	}

	low, err := engine.Recommend(context.Background(), table, likes, Options{TopK: 5, UndergroundWeight: 0})
	if err != nil {
		t.Fatalf("Recommend(w=0) error = %v", err)
	}
	if len(low) == 0 {
		t.Fatalf("expected results with w=0")
	}
	for i := 1; i < len(low); i++ {
		if low[i-1].Similarity < low[i].Similarity {
			t.Errorf("with w=0 ranking should follow similarity, got %v before %v",
				low[i-1].Similarity, low[i].Similarity)
		}
	}
}
