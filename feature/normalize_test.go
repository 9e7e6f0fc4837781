package feature

import (
	"reflect"
	"testing"
)

func TestNormalizeGenres(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{
			name: "string slice passes through",
			in:   []string{"progressive metal", "sludge metal"},
			want: []string{"progressive metal", "sludge metal"},
		},
		{
			name: "nil becomes empty",
			in:   nil,
			want: []string{},
		},
		{
			name: "nil string slice becomes empty",
			in:   []string(nil),
			want: []string{},
		},
		{
			name: "any slice from json decode",
			in:   []any{"djent", "mathcore"},
			want: []string{"djent", "mathcore"},
		},
		{
			name: "single quoted list literal",
			in:   "['progressive metal', 'sludge metal']",
			want: []string{"progressive metal", "sludge metal"},
		},
		{
			name: "double quoted list literal",
			in:   `["post-metal", "doom metal"]`,
			want: []string{"post-metal", "doom metal"},
		},
		{
			name: "escaped quote inside element",
			in:   `['women\'s music']`,
			want: []string{"women's music"},
		},
		{
			name: "empty list literal",
			in:   "[]",
			want: []string{},
		},
		{
			name: "bare comma separated text",
			in:   "metal, djent",
			want: []string{"metal", "djent"},
		},
		{
			name: "comma text with empty segments",
			in:   "metal,, djent, ",
			want: []string{"metal", "djent"},
		},
		{
			name: "broken literal falls back to bracket strip",
			in:   "[metal djent, doom",
			want: []string{"[metal djent", "doom"},
		},
		{
			name: "unterminated quote falls back to bracket strip",
			in:   "['metal, djent]",
			want: []string{"'metal", "djent"},
		},
		{
			name: "empty string",
			in:   "",
			want: []string{},
		},
		{
			name: "whitespace only",
			in:   "   ",
			want: []string{},
		},
		{
			name: "unsupported type becomes empty",
			in:   42,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeGenres(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeGenres(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeGenresIdempotent(t *testing.T) {
	inputs := []any{
		"['progressive metal', 'sludge metal']",
		"metal, djent",
		[]string{"post-metal"},
	}
	for _, in := range inputs {
		once := NormalizeGenres(in)
		twice := NormalizeGenres(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("normalize not idempotent for %v: first %v, second %v", in, once, twice)
		}
	}
}
