package classifier

import (
	"strings"
	"testing"
)

func TestIsGreeting(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected bool
	}{
		{"simple hi", "hi", true},
		{"thanks with punctuation", "thanks!", true},
		{"good morning", "Good morning", true},
		{"polite variant", "thank you so much", true},
		{"parting", "see you later", true},
		{"empty", "", false},
		{"technical question", "how do I reverse a linked list", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsGreeting(tt.question); got != tt.expected {
				t.Errorf("IsGreeting(%q) = %v, want %v", tt.question, got, tt.expected)
			}
		})
	}
}

func TestIsOffTopic(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected bool
	}{
		{"weather", "what is the weather like today", true},
		{"small talk", "how's your day going", true},
		{"opinion", "what's your opinion on pineapple pizza", true},
		{"interview question", "explain database indexing strategies", false},
		{"empty", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOffTopic(tt.question); got != tt.expected {
				t.Errorf("IsOffTopic(%q) = %v, want %v", tt.question, got, tt.expected)
			}
		})
	}
}

func TestIsAmbiguous(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected bool
	}{
		{"very short", "why?", true},
		{"vague opener few words", "what is this", true},
		{"vague opener no technical term", "explain the thing we talked about yesterday please", true},
		{"vague opener with technical term", "explain how database indexing works under load", false},
		{"specific question", "implement a rate limiter using the token bucket approach", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAmbiguous(tt.question); got != tt.expected {
				t.Errorf("IsAmbiguous(%q) = %v, want %v", tt.question, got, tt.expected)
			}
		})
	}
}

func TestNeedsComparison(t *testing.T) {
	tests := []struct {
		question string
		expected bool
	}{
		{"compare REST and GraphQL", true},
		{"React versus Vue", true},
		{"kafka vs rabbitmq", true},
		{"what is the difference between TCP and UDP", true},
		{"explain TCP handshakes", false},
	}

	for _, tt := range tests {
		if got := NeedsComparison(tt.question); got != tt.expected {
			t.Errorf("NeedsComparison(%q) = %v, want %v", tt.question, got, tt.expected)
		}
	}
}

func TestNeedsFirstPerson(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected bool
	}{
		{"tell me about yourself", "tell me about yourself", true},
		{"hire you", "why should we hire you", true},
		{"built reference", "what systems have you built", true},
		{"strategy question stays impersonal", "how would you optimize database queries", false},
		{"neutral concept", "what is a goroutine", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsFirstPerson(tt.question); got != tt.expected {
				t.Errorf("NeedsFirstPerson(%q) = %v, want %v", tt.question, got, tt.expected)
			}
		})
	}
}

func TestIsTechnicalStrategy(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected bool
	}{
		{"optimize with opener", "how would you optimize slow API endpoints", true},
		{"improve with opener", "what techniques improve cache efficiency", true},
		{"personal override wins", "tell me about yourself and how you optimize code", false},
		{"no strategy verb", "what is a b-tree", false},
		{"no question opener", "optimize this", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTechnicalStrategy(tt.question); got != tt.expected {
				t.Errorf("IsTechnicalStrategy(%q) = %v, want %v", tt.question, got, tt.expected)
			}
		})
	}
}

func TestIsSystemDesign(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected bool
	}{
		{"classic design", "how would you design a url shortener", true},
		{"architecture", "describe a scalable microservices architecture", true},
		{"excluded by algorithm keyword", "design a sorting algorithm for large datasets", false},
		{"excluded by ui keyword", "design the user interface for a booking system", false},
		{"excluded by schema keyword", "design the database schema for an e-commerce site", false},
		{"plain concept", "what does idempotent mean", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSystemDesign(tt.question); got != tt.expected {
				t.Errorf("IsSystemDesign(%q) = %v, want %v", tt.question, got, tt.expected)
			}
		})
	}
}

// The system-design exclusion list is what keeps the three specific diagram
// classifiers authoritative for their own questions. This test documents
// which of their keywords are covered by an exclusion and pins the known
// intentional overlaps (e.g. "database design" fires both DatabaseSchema and
// SystemDesign) so a future list edit cannot change precedence silently.
func TestSystemDesignExclusionCoverage(t *testing.T) {
	excluded := func(keyword string) bool {
		for _, ex := range systemDesignExclusions {
			if strings.Contains(keyword, ex) {
				return true
			}
		}
		return false
	}

	knownOverlaps := map[string]struct{}{
		// DatabaseSchema keywords the exclusion list does not cover.
		"database design":    {},
		"show the database":  {},
		"database structure": {},
		"table design":       {},
		"schema design":      {},
		"relational model":   {},
		"database model":     {},
		"data model":         {},
		// UIDesign keywords the exclusion list does not cover.
		"design the front":     {},
		"design the interface": {},
		"design the page":      {},
		// Algorithm keywords without the word "algorithm" in them.
		"build a recommendation":   {},
		"implement authentication": {},
	}

	for _, list := range [][]string{databaseSchemaKeywords, uiDesignKeywords, algorithmKeywords} {
		for _, kw := range list {
			if excluded(kw) {
				continue
			}
			if _, ok := knownOverlaps[kw]; !ok {
				t.Errorf("keyword %q is not covered by a system-design exclusion and not a documented overlap", kw)
			}
		}
	}
}

func TestHasSufficientContext(t *testing.T) {
	tests := []struct {
		name       string
		question   string
		hasHistory bool
		expected   bool
	}{
		{"pronoun with history", "can you expand on that", true, true},
		{"back reference with history", "what did we cover earlier", true, true},
		{"follow up with history", "also explain caching", true, true},
		{"pronoun without history", "can you expand on that", false, false},
		{"standalone with history", "explain sharding", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasSufficientContext(tt.question, tt.hasHistory); got != tt.expected {
				t.Errorf("HasSufficientContext(%q, %v) = %v, want %v", tt.question, tt.hasHistory, got, tt.expected)
			}
		})
	}
}

func TestClassifyIndependence(t *testing.T) {
	// A comparison question about architecture can co-fire several tags.
	r := Classify("compare monolith and microservices architecture", false)
	if !r.NeedsComparison {
		t.Error("expected NeedsComparison")
	}
	if !r.SystemDesign {
		t.Error("expected SystemDesign")
	}
	if r.Greeting || r.OffTopic {
		t.Error("unexpected greeting/off-topic tags")
	}
}
