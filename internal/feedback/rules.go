package feedback

import "strings"

// RuleID names a local feedback rule.
type RuleID string

const (
	RulePerfect        RuleID = "perfect"
	RuleNearPerfect    RuleID = "near_perfect"
	RuleClose          RuleID = "close"
	RuleKeepPracticing RuleID = "keep_practicing"
	RuleAlmostThere    RuleID = "almost_there"
	RuleTryAgain       RuleID = "try_again"
)

// Rule is one row of the local rule table.
type Rule struct {
	ID    RuleID
	Match func(p Params) bool
}

// DefaultRules is evaluated top to bottom; the first matching rule wins.
// Score thresholds apply to Params.Score, not Params.Accuracy.
var DefaultRules = []Rule{
	{RulePerfect, func(p Params) bool { return p.Score >= 90 && len(p.MissedWords) == 0 }},
	{RuleNearPerfect, func(p Params) bool { return p.Score >= 80 && len(p.MissedWords) == 0 }},
	{RuleClose, func(p Params) bool { return p.Score >= 80 && len(p.MissedWords) <= 2 }},
	{RuleKeepPracticing, func(p Params) bool { return p.Score >= 70 && len(p.MissedWords) <= 1 }},
	{RuleAlmostThere, func(p Params) bool { return p.Score >= 70 && len(p.MissedWords) <= 3 }},
	{RuleTryAgain, func(p Params) bool {
		return p.Score >= 50 && len(p.MissedWords) <= 2 && len(p.ExtraWords) == 0
	}},
}

// Template is the three-line message rendered for a rule. Lines may contain
// the {missed} placeholder.
type Template struct {
	Praise string
	Tip    string
	Next   string
}

// TemplateSet maps every rule to its message.
type TemplateSet map[RuleID]Template

// missedPlaceholder is replaced by the first two missed words, comma-joined.
const missedPlaceholder = "{missed}"

// Render fills in the template for the given params.
func (t Template) Render(p Params) string {
	r := strings.NewReplacer(missedPlaceholder, missedSummary(p.MissedWords))
	return strings.Join([]string{
		r.Replace(t.Praise),
		r.Replace(t.Tip),
		r.Replace(t.Next),
	}, "\n")
}

func missedSummary(words []string) string {
	if len(words) > 2 {
		words = words[:2]
	}
	return strings.Join(words, ", ")
}

// Selector is the deterministic local feedback table.
type Selector struct {
	rules     []Rule
	templates TemplateSet
}

// NewSelector builds a selector over rules and templates. A rule without a
// template never matches.
func NewSelector(rules []Rule, templates TemplateSet) *Selector {
	return &Selector{rules: rules, templates: templates}
}

// DefaultSelector uses DefaultRules with the Korean templates.
func DefaultSelector() *Selector {
	return NewSelector(DefaultRules, KoreanTemplates)
}

// Match returns the first rule that applies to p.
func (s *Selector) Match(p Params) (RuleID, bool) {
	for _, rule := range s.rules {
		if _, ok := s.templates[rule.ID]; !ok {
			continue
		}
		if rule.Match(p) {
			return rule.ID, true
		}
	}
	return "", false
}

// Select renders the feedback of the first matching rule. ok is false when
// no rule applies and the request should be escalated.
func (s *Selector) Select(p Params) (text string, rule RuleID, ok bool) {
	rule, ok = s.Match(p)
	if !ok {
		return "", "", false
	}
	return s.templates[rule].Render(p), rule, true
}

var defaultSelector = DefaultSelector()

// SelectLocal runs the default Korean rule table. It returns nil when the
// request must be escalated.
func SelectLocal(p Params) *string {
	text, _, ok := defaultSelector.Select(p)
	if !ok {
		return nil
	}
	return &text
}
