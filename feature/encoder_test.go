package feature

import (
	"reflect"
	"testing"

	"github.com/rushteam/digkit/core"
)

func makeArtist(id, name string, genres ...string) *core.Artist {
	a := core.NewArtist(id, name)
	a.Genres = genres
	return a
}

func TestGenreEncoder_Encode(t *testing.T) {
	artists := []*core.Artist{
		makeArtist("a1", "A", "metal", "djent"),
		makeArtist("a2", "B", "djent"),
		makeArtist("a3", "C"),
	}

	enc := &GenreEncoder{}
	m := enc.Encode(artists)

	wantVocab := []string{"djent", "metal"}
	if !reflect.DeepEqual(m.Vocabulary, wantVocab) {
		t.Fatalf("Vocabulary = %v, want %v", m.Vocabulary, wantVocab)
	}

	wantRows := [][]float64{
		{1, 1},
		{1, 0},
		{0, 0},
	}
	if !reflect.DeepEqual(m.Rows, wantRows) {
		t.Errorf("Rows = %v, want %v", m.Rows, wantRows)
	}

	if i, ok := m.Column("metal"); !ok || i != 1 {
		t.Errorf("Column(metal) = %d, %v, want 1, true", i, ok)
	}
	if _, ok := m.Column("jazz"); ok {
		t.Errorf("Column(jazz) should not exist")
	}
}

func TestGenreEncoder_DuplicateGenresAsSet(t *testing.T) {
	artists := []*core.Artist{
		makeArtist("a1", "A", "metal", "metal", "metal"),
	}
	m := (&GenreEncoder{}).Encode(artists)

	if !reflect.DeepEqual(m.Vocabulary, []string{"metal"}) {
		t.Fatalf("Vocabulary = %v, want [metal]", m.Vocabulary)
	}
	if m.Rows[0][0] != 1 {
		t.Errorf("duplicate genre should encode as 1, got %v", m.Rows[0][0])
	}
}

func TestGenreEncoder_Deterministic(t *testing.T) {
	build := func() []*core.Artist {
		return []*core.Artist{
			makeArtist("a1", "A", "sludge metal", "post-metal"),
			makeArtist("a2", "B", "doom metal", "post-metal"),
		}
	}

	first := (&GenreEncoder{}).Encode(build())
	second := (&GenreEncoder{}).Encode(build())

	if !reflect.DeepEqual(first.Vocabulary, second.Vocabulary) {
		t.Fatalf("vocabulary not deterministic: %v vs %v", first.Vocabulary, second.Vocabulary)
	}
	if !reflect.DeepEqual(first.Rows, second.Rows) {
		t.Errorf("rows not deterministic: %v vs %v", first.Rows, second.Rows)
	}
}

func TestGenreEncoder_AttachRows(t *testing.T) {
	a := makeArtist("a1", "A", "metal")
	b := makeArtist("a2", "B", "djent")

	m := (&GenreEncoder{AttachRows: true}).Encode([]*core.Artist{a, b})

	if !reflect.DeepEqual(a.Features, m.Rows[0]) {
		t.Errorf("artist a Features = %v, want %v", a.Features, m.Rows[0])
	}
	if !reflect.DeepEqual(b.Features, m.Rows[1]) {
		t.Errorf("artist b Features = %v, want %v", b.Features, m.Rows[1])
	}
}

func TestGenreEncoder_Empty(t *testing.T) {
	m := (&GenreEncoder{}).Encode(nil)
	if len(m.Vocabulary) != 0 {
		t.Errorf("empty input vocabulary = %v, want empty", m.Vocabulary)
	}
	if len(m.Rows) != 0 {
		t.Errorf("empty input rows = %v, want empty", m.Rows)
	}
}
