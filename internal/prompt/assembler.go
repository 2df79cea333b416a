// Package prompt assembles the system prompt and message list sent to the
// model for one question. The base template carries the universal answer
// rules; classifier tags decide which override blocks get appended, and the
// style block always goes last so its rules take precedence.
package prompt

import (
	"strings"

	"github.com/your-org/interview-assistant/internal/classifier"
)

// Turn is one question/answer exchange from the session history.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Message is a single chat message with an OpenAI-compatible role.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// maxHistoryTurns caps how much session history rides along with each
// question.
const maxHistoryTurns = 5

// Request holds everything needed to assemble the prompt for one question.
type Request struct {
	Question string
	// SystemPrompt replaces BaseTemplate when non-empty. Override blocks
	// are still appended after it.
	SystemPrompt string
	// ProfileText is the session's uploaded candidate profile, if any.
	ProfileText string
	// History is the session's prior turns, oldest first.
	History []Turn
	Style   StyleParams
}

// Options tunes assembly behavior.
type Options struct {
	// StrictPrecedence suppresses the comparison, system-design, diagram,
	// and strategy blocks when the question is a greeting or off-topic, so
	// a bare "thanks!" never carries architecture instructions. Disabled,
	// every matching block is appended regardless.
	StrictPrecedence bool
}

// DefaultOptions returns the options used by the server.
func DefaultOptions() Options {
	return Options{StrictPrecedence: true}
}

// Budget holds the per-complexity token limits.
type Budget struct {
	Simple  int
	Code    int
	Complex int
}

// DefaultBudget mirrors the server's default token limits.
func DefaultBudget() Budget {
	return Budget{Simple: 300, Code: 800, Complex: 1200}
}

// Build assembles the full system prompt: base template, then conditional
// override blocks in fixed order, then the style block. It returns the prompt
// together with the classifier tags that drove the selection.
func Build(req Request, opts Options) (string, classifier.Result) {
	tags := classifier.Classify(req.Question, len(req.History) > 0)

	var b strings.Builder
	if req.SystemPrompt != "" {
		b.WriteString(req.SystemPrompt)
	} else {
		b.WriteString(BaseTemplate)
	}

	if req.ProfileText != "" {
		b.WriteString("\n\n")
		b.WriteString(profileContextHeader)
		b.WriteString(strings.TrimSpace(req.ProfileText))
		if tags.NeedsFirstPerson {
			b.WriteString(personaOverride)
		}
	}

	// Greeting and off-topic questions want a short, redirecting reply;
	// with strict precedence the heavyweight formatting blocks step aside.
	suppress := opts.StrictPrecedence && (tags.Greeting || tags.OffTopic)

	if tags.NeedsComparison && !suppress {
		b.WriteString(comparisonOverride)
	}
	if tags.Greeting {
		b.WriteString(greetingOverride)
	}
	if tags.OffTopic {
		b.WriteString(offTopicOverride)
	}
	if tags.Ambiguous {
		b.WriteString(ambiguousOverride)
	}
	if !tags.HasSufficientContext {
		b.WriteString(contextFallbackOverride)
	}
	if tags.SystemDesign && !suppress {
		b.WriteString(systemDesignOverride)
	}
	if tags.DatabaseSchema && !suppress {
		b.WriteString(databaseSchemaOverride)
	}
	if tags.UIDesign && !suppress {
		b.WriteString(uiDesignOverride)
	}
	if tags.Algorithm && !suppress {
		b.WriteString(algorithmOverride)
	}
	if tags.TechnicalStrategy && !suppress {
		b.WriteString(technicalStrategyOverride)
	}

	b.WriteString(styleOverrides(req.Style))

	return b.String(), tags
}

// BuildMessages assembles the chat message list: the system prompt first,
// then the last few history turns as alternating user/assistant messages,
// and finally the current question. Turns with an empty side contribute only
// the non-empty message.
func BuildMessages(req Request, opts Options) ([]Message, classifier.Result) {
	system, tags := Build(req, opts)

	messages := make([]Message, 0, 2+2*maxHistoryTurns)
	messages = append(messages, Message{Role: RoleSystem, Content: system})

	history := req.History
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	for _, turn := range history {
		if q := strings.TrimSpace(turn.Question); q != "" {
			messages = append(messages, Message{Role: RoleUser, Content: q})
		}
		if a := strings.TrimSpace(turn.Answer); a != "" {
			messages = append(messages, Message{Role: RoleAssistant, Content: a})
		}
	}
	messages = append(messages, Message{Role: RoleUser, Content: req.Question})

	return messages, tags
}

var simpleIndicators = []string{"what is", "define", "explain briefly", "simple", "basic"}

var codeIndicators = []string{"code", "implement", "write", "function", "class", "algorithm"}

var complexIndicators = []string{"architecture", "design", "system", "compare", "advantages", "disadvantages", "best practices"}

// estimateComplexity suggests a token limit from the question wording. The
// checks run simple-first so "what is X architecture" still gets the short
// budget.
func estimateComplexity(question string, budget Budget) int {
	q := strings.ToLower(question)
	if containsAny(q, simpleIndicators) {
		return budget.Simple
	}
	if containsAny(q, codeIndicators) {
		return budget.Code
	}
	if containsAny(q, complexIndicators) {
		return budget.Complex
	}
	return (budget.Simple + budget.Code) / 2
}

// MaxTokensFor picks the completion token limit for a question. An explicit
// baseLimit always wins; otherwise the estimate applies, capped at twice the
// complex budget.
func MaxTokensFor(question string, baseLimit int, budget Budget) int {
	if baseLimit > 0 {
		return baseLimit
	}
	estimated := estimateComplexity(question, budget)
	if ceiling := budget.Complex * 2; estimated > ceiling {
		return ceiling
	}
	return estimated
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
