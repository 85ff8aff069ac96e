package sim

// Rule inspects the state and returns a verdict. Continue means the rule has
// nothing to say.
type Rule interface {
	Name() string
	Evaluate(s *State) Verdict
}

// RuleFunc adapts a function to Rule.
type RuleFunc struct {
	RuleName string
	Fn       func(s *State) Verdict
}

func (r RuleFunc) Name() string              { return r.RuleName }
func (r RuleFunc) Evaluate(s *State) Verdict { return r.Fn(s) }

// RuleSet is an immutable ordered list of rules.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet concatenates the given groups in order.
func NewRuleSet(groups ...[]Rule) RuleSet {
	var rules []Rule
	for _, g := range groups {
		for _, r := range g {
			if r != nil {
				rules = append(rules, r)
			}
		}
	}
	return RuleSet{rules: rules}
}

func (rs RuleSet) Len() int {
	return len(rs.rules)
}

// Names lists rule names in evaluation order.
func (rs RuleSet) Names() []string {
	names := make([]string, 0, len(rs.rules))
	for _, r := range rs.rules {
		names = append(names, r.Name())
	}
	return names
}

// Evaluate returns the first non-Continue verdict. Rules after it are not run.
func (rs RuleSet) Evaluate(s *State) Verdict {
	for _, r := range rs.rules {
		if v := r.Evaluate(s); v != Continue {
			return v
		}
	}
	return Continue
}
