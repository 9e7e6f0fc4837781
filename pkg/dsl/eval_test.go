package dsl

import (
	"testing"

	"github.com/rushteam/digkit/core"
	"github.com/rushteam/digkit/pkg/utils"
)

func testEval() *Eval {
	a := core.NewArtist("a5", "Vildhjarta")
	a.Popularity = 35
	a.Genres = []string{"djent", "progressive metal"}
	a.Similarity = 0.81
	a.PopNorm = 0.486
	a.UndergroundScore = 0.514
	a.FinalScore = 0.7212
	a.PutLabel("recall_source", utils.Label{Value: "seed|genre", Source: "recall"})

	rctx := &core.RecommendContext{
		UserLikes: []string{"Meshuggah"},
		Scene:     "discover",
	}
	return NewEval(a, rctx)
}

func TestEval_Evaluate(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{`artist.popularity <= 40`, true},
		{`artist.popularity > 40`, false},
		{`"djent" in artist.genres`, true},
		{`"black metal" in artist.genres`, false},
		{`artist.similarity > 0.5 && artist.underground_score > 0.5`, true},
		{`label.recall_source.contains("genre")`, true},
		{`label.recall_source.contains("related")`, false},
		{`"filtered" in label`, false},
		{`rctx.scene == "discover"`, true},
		{`"Meshuggah" in rctx.user_likes`, true},
		{``, true}, // 空表达式恒为 true
	}

	e := testEval()
	for _, tt := range tests {
		got, err := e.Evaluate(tt.expr)
		if err != nil {
			t.Fatalf("Evaluate(%q) error = %v", tt.expr, err)
		}
		if got != tt.want {
			t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
		}
	}
}

func TestEval_Errors(t *testing.T) {
	e := testEval()

	if _, err := e.Evaluate(`artist.popularity +`); err == nil {
		t.Errorf("syntax error should be reported")
	}
	if _, err := e.Evaluate(`artist.name`); err == nil {
		t.Errorf("non-boolean expression should be rejected")
	}
}
