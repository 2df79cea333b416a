// Package classifier tags interview questions with independent boolean
// predicates. The tags drive conditional prompt overrides: several can fire
// for one question, and the absence of a match simply means the corresponding
// override is skipped. All predicates are pure string heuristics.
package classifier

import (
	"strings"
)

// Result is the set of tags computed for a single question. Tags are
// independent and not mutually exclusive.
type Result struct {
	Greeting             bool `json:"greeting"`
	OffTopic             bool `json:"off_topic"`
	Ambiguous            bool `json:"ambiguous"`
	NeedsComparison      bool `json:"needs_comparison"`
	NeedsFirstPerson     bool `json:"needs_first_person"`
	TechnicalStrategy    bool `json:"technical_strategy"`
	SystemDesign         bool `json:"system_design"`
	DatabaseSchema       bool `json:"database_schema"`
	UIDesign             bool `json:"ui_design"`
	Algorithm            bool `json:"algorithm"`
	HasSufficientContext bool `json:"has_sufficient_context"`
}

// Classify evaluates every predicate against the question. hasHistory reports
// whether the session has at least one prior turn; it only influences the
// sufficient-context tag.
func Classify(question string, hasHistory bool) Result {
	return Result{
		Greeting:             IsGreeting(question),
		OffTopic:             IsOffTopic(question),
		Ambiguous:            IsAmbiguous(question),
		NeedsComparison:      NeedsComparison(question),
		NeedsFirstPerson:     NeedsFirstPerson(question),
		TechnicalStrategy:    IsTechnicalStrategy(question),
		SystemDesign:         IsSystemDesign(question),
		DatabaseSchema:       IsDatabaseSchema(question),
		UIDesign:             IsUIDesign(question),
		Algorithm:            IsAlgorithm(question),
		HasSufficientContext: HasSufficientContext(question, hasHistory),
	}
}

// IsGreeting reports whether the question is a bare salutation, courtesy, or
// parting. Punctuation is stripped before matching so "thanks!" still counts.
func IsGreeting(question string) bool {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return false
	}
	for _, ch := range []string{"!", ".", ","} {
		q = strings.ReplaceAll(q, ch, "")
	}
	if _, ok := greetingExact[q]; ok {
		return true
	}
	for _, p := range greetingPrefixes {
		if strings.HasPrefix(q, p) {
			return true
		}
	}
	return false
}

// IsOffTopic reports whether the question strays from interview preparation.
func IsOffTopic(question string) bool {
	q := strings.ToLower(question)
	if strings.TrimSpace(q) == "" {
		return false
	}
	if containsAny(q, offTopicKeywords) {
		return true
	}
	return containsAny(q, offTopicPatterns)
}

// IsAmbiguous reports whether the question is too vague to answer directly.
// Very short questions always qualify; otherwise a vague opener combined with
// few words and no recognizable technical term does.
func IsAmbiguous(question string) bool {
	q := strings.TrimSpace(question)
	if len(q) < 10 {
		return true
	}
	lower := strings.ToLower(q)
	if containsAny(lower, vagueOpeners) {
		if len(strings.Fields(q)) < 5 {
			return true
		}
		if !containsAny(lower, technicalTerms) {
			return true
		}
	}
	return false
}

// NeedsComparison reports whether the question asks for an A-vs-B comparison.
func NeedsComparison(question string) bool {
	return containsAny(strings.ToLower(question), comparisonKeywords)
}

// NeedsFirstPerson reports whether the answer should be voiced as the
// candidate. Technical strategy questions never use first person, even when
// they mention "you".
func NeedsFirstPerson(question string) bool {
	if IsTechnicalStrategy(question) {
		return false
	}
	q := strings.ToLower(question)
	return containsAny(q, personalIndicators) || containsAny(q, personalReferences)
}

// IsTechnicalStrategy reports whether the question asks for a general
// approach or methodology rather than personal experience.
func IsTechnicalStrategy(question string) bool {
	q := strings.ToLower(question)
	if !containsAny(q, strategyIndicators) {
		return false
	}
	if !containsAny(q, questionOpeners) {
		return false
	}
	return !containsAny(q, strategyPersonalOverrides)
}

// IsSystemDesign reports whether the question is an explicit system design or
// architecture question. Questions carrying an exclusion keyword belong to a
// more specific classifier and never match here.
func IsSystemDesign(question string) bool {
	q := strings.ToLower(question)
	if containsAny(q, systemDesignExclusions) {
		return false
	}
	return containsAny(q, systemDesignKeywords)
}

// IsDatabaseSchema reports whether the question asks for a database schema or
// ER diagram.
func IsDatabaseSchema(question string) bool {
	return containsAny(strings.ToLower(question), databaseSchemaKeywords)
}

// IsUIDesign reports whether the question asks for UI/UX layout design.
func IsUIDesign(question string) bool {
	return containsAny(strings.ToLower(question), uiDesignKeywords)
}

// IsAlgorithm reports whether the question targets algorithms or data
// structures.
func IsAlgorithm(question string) bool {
	return containsAny(strings.ToLower(question), algorithmKeywords)
}

// HasSufficientContext reports whether prior turns exist and the question
// refers back to them through a pronoun, back-reference, or follow-up word.
func HasSufficientContext(question string, hasHistory bool) bool {
	if !hasHistory {
		return false
	}
	q := strings.ToLower(question)
	if containsAny(q, contextPronouns) {
		return true
	}
	if containsAny(q, contextReferences) {
		return true
	}
	return containsAny(q, followUpWords)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
