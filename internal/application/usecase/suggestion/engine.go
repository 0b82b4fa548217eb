package suggestion

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
)

const (
	keywordWeight      = 0.3
	patternWeight      = 0.2
	minRawScore        = 0.1
	maxConfidence      = 0.95
	fallbackConfidence = 0.5
	maxSuggestions     = 3

	fallbackCategory = "Miscellaneous"
)

// AmountHeuristic boosts a rule when the transaction amount falls inside
// [Min, Max]. Max of zero means unbounded above.
type AmountHeuristic struct {
	Min   float64
	Max   float64
	Boost float64
}

func (h *AmountHeuristic) matches(amount float64) bool {
	if amount < h.Min {
		return false
	}
	if h.Max > 0 && amount > h.Max {
		return false
	}
	return true
}

// DateHeuristic boosts a rule when the transaction day-of-month falls in
// the start-of-month or end-of-month window. Used for recurring credits
// like salaries that cluster around month boundaries.
type DateHeuristic struct {
	EarlyDay int
	LateDay  int
	Boost    float64
}

func (h *DateHeuristic) matches(date time.Time) bool {
	if date.IsZero() {
		return false
	}
	day := date.Day()
	return (h.EarlyDay > 0 && day <= h.EarlyDay) || (h.LateDay > 0 && day >= h.LateDay)
}

// Rule describes one category heuristic: keyword and wildcard matching
// against the transaction text, plus optional amount and date boosts.
type Rule struct {
	Category       string
	Keywords       []string
	Patterns       []string
	BaseConfidence float64
	Priority       int
	Amount         *AmountHeuristic
	Date           *DateHeuristic
}

// Engine scores transactions against an ordered ruleset. Scoring is
// deterministic: the same input always yields the same suggestions.
type Engine struct {
	rules []Rule
}

func NewEngine(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// Suggest ranks the configured rules plus any caller-supplied extra rules
// against the request and returns at most maxSuggestions entries. Extra
// rules are evaluated first so owner-defined rules shadow the built-ins
// for the same category. The result always contains at least one entry:
// when nothing scores confidently, a fallback category is prepended.
func (e *Engine) Suggest(req adapter.SuggestionRequest, extra []Rule) []*entity.CategorySuggestion {
	text := normalize(req.Description + " " + req.Vendor)

	var scored []*entity.CategorySuggestion
	seen := make(map[string]bool)

	for _, rule := range append(extra, e.rules...) {
		if seen[rule.Category] {
			continue
		}
		if s := scoreRule(rule, text, req); s != nil {
			seen[rule.Category] = true
			scored = append(scored, s)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Confidence > scored[j].Confidence
	})
	if len(scored) > maxSuggestions {
		scored = scored[:maxSuggestions]
	}

	if len(scored) == 0 || scored[0].Confidence < fallbackConfidence {
		scored = append([]*entity.CategorySuggestion{{
			Category:   fallbackCategory,
			Confidence: fallbackConfidence,
			Reasoning:  "no strong category signal in the transaction details",
		}}, scored...)
		if len(scored) > maxSuggestions {
			scored = scored[:maxSuggestions]
		}
	}

	return scored
}

func scoreRule(rule Rule, text string, req adapter.SuggestionRequest) *entity.CategorySuggestion {
	var raw float64
	var reasons []string

	for _, kw := range rule.Keywords {
		if kw != "" && strings.Contains(text, normalize(kw)) {
			raw += keywordWeight
			reasons = append(reasons, fmt.Sprintf("matched keyword %q", kw))
		}
	}
	for _, pattern := range rule.Patterns {
		if matchWildcard(normalize(pattern), text) {
			raw += patternWeight
			reasons = append(reasons, fmt.Sprintf("matched pattern %q", pattern))
		}
	}
	if rule.Amount != nil && rule.Amount.matches(req.Amount) {
		raw += rule.Amount.Boost
		reasons = append(reasons, "amount in typical range")
	}
	if rule.Date != nil && rule.Date.matches(req.Date) {
		raw += rule.Date.Boost
		reasons = append(reasons, "date matches recurring pattern")
	}

	if raw < minRawScore {
		return nil
	}
	if raw > 1 {
		raw = 1
	}

	confidence := raw * rule.BaseConfidence
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	return &entity.CategorySuggestion{
		Category:   rule.Category,
		Confidence: confidence,
		Reasoning:  strings.Join(reasons, "; "),
	}
}

// matchWildcard reports whether text matches a pattern where '*' spans any
// run of characters. Literal segments must appear in order; a pattern
// without a leading or trailing '*' anchors to the respective end.
func matchWildcard(pattern, text string) bool {
	if pattern == "" {
		return text == ""
	}

	segments := strings.Split(pattern, "*")
	if len(segments) == 1 {
		return text == pattern
	}

	if segments[0] != "" {
		if !strings.HasPrefix(text, segments[0]) {
			return false
		}
		text = text[len(segments[0]):]
	}
	last := segments[len(segments)-1]

	for _, seg := range segments[1 : len(segments)-1] {
		if seg == "" {
			continue
		}
		idx := strings.Index(text, seg)
		if idx < 0 {
			return false
		}
		text = text[idx+len(seg):]
	}

	if last == "" {
		return true
	}
	return strings.HasSuffix(text, last)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
