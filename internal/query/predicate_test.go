package query

import (
	"reflect"
	"testing"
)

func TestEqSQL_ContinuesNumbering(t *testing.T) {
	args := []any{int64(7)} // caller already bound the viewer id
	sql := Eq("is_famous", true).SQL(&args)
	if sql != "is_famous = $2" {
		t.Errorf("expected is_famous = $2, got %q", sql)
	}
	if !reflect.DeepEqual(args, []any{int64(7), true}) {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestContainsFoldSQL_EscapesLikeMetacharacters(t *testing.T) {
	args := []any{}
	sql := ContainsFold("title", "100%_pure\\gold").SQL(&args)
	if sql != "title ILIKE $1" {
		t.Errorf("unexpected sql: %q", sql)
	}
	want := `%100\%\_pure\\gold%`
	if args[0] != want {
		t.Errorf("expected arg %q, got %q", want, args[0])
	}
}

func TestAndOrSQL_Nesting(t *testing.T) {
	args := []any{}
	pred := And(
		Eq("is_famous", true),
		Or(ContainsFold("title", "rock"), ContainsFold("artist", "rock")),
	)
	sql := pred.SQL(&args)
	want := "(is_famous = $1 AND (title ILIKE $2 OR artist ILIKE $3))"
	if sql != want {
		t.Errorf("expected %q, got %q", want, sql)
	}
	if len(args) != 3 {
		t.Errorf("expected 3 args, got %d", len(args))
	}
}

func TestCombinators_SkipNilMembers(t *testing.T) {
	if And() != nil {
		t.Error("And() should be nil")
	}
	if And(nil, nil) != nil {
		t.Error("And(nil, nil) should be nil")
	}
	single := Eq("genre", "jazz")
	if got := And(nil, single); !reflect.DeepEqual(got, single) {
		t.Errorf("And with one member should collapse, got %v", got)
	}
	if got := Or(single, nil); !reflect.DeepEqual(got, single) {
		t.Errorf("Or with one member should collapse, got %v", got)
	}
}

func TestMatch(t *testing.T) {
	row := map[string]any{
		"title":     "Smoke on the Water",
		"artist":    "Deep Purple",
		"genre":     "Hard Rock",
		"is_famous": true,
	}

	tests := []struct {
		name string
		pred Predicate
		want bool
	}{
		{"eq true", Eq("is_famous", true), true},
		{"eq false", Eq("is_famous", false), false},
		{"eq missing field", Eq("uploader_id", int64(3)), false},
		{"contains case-insensitive", ContainsFold("genre", "rock"), true},
		{"contains needle cased", ContainsFold("title", "SMOKE"), true},
		{"contains miss", ContainsFold("title", "fire"), false},
		{"and all hold", And(Eq("is_famous", true), ContainsFold("artist", "purple")), true},
		{"and one fails", And(Eq("is_famous", true), ContainsFold("artist", "floyd")), false},
		{"or one holds", Or(ContainsFold("title", "fire"), ContainsFold("title", "water")), true},
		{"or none hold", Or(ContainsFold("title", "fire"), ContainsFold("title", "ice")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred.Match(row); got != tt.want {
				t.Errorf("Match = %v, want %v", got, tt.want)
			}
		})
	}
}
