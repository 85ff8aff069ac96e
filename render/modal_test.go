package render

import (
	"reflect"
	"testing"

	"github.com/milk9111/wizard/sim"
)

func TestWrap(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		columns int
		want    []string
	}{
		{"empty", "   ", 10, nil},
		{"fits", "press space", 20, []string{"press space"}},
		{"exact_width", "abc def", 7, []string{"abc def"}},
		{"breaks", "the quick brown fox jumps", 10, []string{"the quick", "brown fox", "jumps"}},
		{"long_word", "a extraordinarily b", 5, []string{"a", "extraordinarily", "b"}},
		{"collapses_spaces", "a   b", 10, []string{"a b"}},
		{"no_limit", "a b c", 0, []string{"a b c"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Wrap(c.text, c.columns); !reflect.DeepEqual(got, c.want) {
				t.Fatalf("Wrap = %q, want %q", got, c.want)
			}
		})
	}
}

func TestModalLines(t *testing.T) {
	for _, v := range []sim.Verdict{sim.Win, sim.Fail, sim.Pause, sim.Intro} {
		t.Run(v.String(), func(t *testing.T) {
			lines := ModalLines(v, ModalColumns)
			if len(lines) < 3 {
				t.Fatalf("too few lines: %q", lines)
			}
			if lines[len(lines)-1] != resumeHint {
				t.Fatalf("last line = %q", lines[len(lines)-1])
			}
			for _, l := range lines {
				if len(l) > ModalColumns {
					t.Fatalf("line too long: %q", l)
				}
			}
		})
	}
	if got := ModalLines(sim.Continue, ModalColumns); got != nil {
		t.Fatalf("continue has no modal, got %q", got)
	}
}
