package sim

import (
	"reflect"
	"testing"
)

func TestRuleSetShortCircuits(t *testing.T) {
	first := &countingRule{name: "first", verdict: Continue}
	second := &countingRule{name: "second", verdict: Pause}
	third := &countingRule{name: "third", verdict: Win}

	rs := NewRuleSet([]Rule{first, second}, []Rule{third})
	if got := rs.Evaluate(NewState()); got != Pause {
		t.Fatalf("verdict = %s, want pause", got)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Fatalf("earlier rules not evaluated once: %d, %d", first.calls, second.calls)
	}
	if third.calls != 0 {
		t.Fatalf("rule after the firing one was evaluated")
	}
}

func TestRuleSetDefaultsToContinue(t *testing.T) {
	if got := NewRuleSet().Evaluate(NewState()); got != Continue {
		t.Fatalf("empty rule set verdict = %s", got)
	}
	rs := NewRuleSet([]Rule{RuleFunc{RuleName: "noop", Fn: func(*State) Verdict { return Continue }}})
	if got := rs.Evaluate(NewState()); got != Continue {
		t.Fatalf("verdict = %s, want continue", got)
	}
}

func TestRuleSetOrderIsStable(t *testing.T) {
	a := &countingRule{name: "a"}
	b := &countingRule{name: "b"}
	c := &countingRule{name: "c"}
	common := []Rule{a, b}
	level := []Rule{nil, c}

	first := NewRuleSet(common, level)
	second := NewRuleSet(common, level)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(first.Names(), want) || !reflect.DeepEqual(second.Names(), want) {
		t.Fatalf("names = %v / %v, want %v", first.Names(), second.Names(), want)
	}
}

func TestParseVerdict(t *testing.T) {
	for v := Continue; v <= Intro; v++ {
		got, ok := ParseVerdict(v.String())
		if !ok || got != v {
			t.Fatalf("ParseVerdict(%q) = %s, %v", v.String(), got, ok)
		}
	}
	if _, ok := ParseVerdict("bogus"); ok {
		t.Fatalf("bogus verdict parsed")
	}
}
