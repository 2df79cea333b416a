package prompt

import (
	"fmt"
	"math/rand"
	"strings"
)

// StyleParams controls the style-and-tone override block appended to every
// prompt. Zero values fall back to sensible defaults, so callers can pass the
// struct straight from a request body.
type StyleParams struct {
	// Mode selects a style preset. "auto" and "varied" resolve to a concrete
	// preset: seeded-random when Variability > 0, otherwise "executive".
	Mode string
	// Tone selects an entry from the tone map; unknown values use the
	// neutral rule.
	Tone string
	// Layout selects an entry from the layout map; unknown values let the
	// model use its judgement.
	Layout string
	// Variability is clamped to [0, 1]. Only its sign matters for preset
	// resolution today.
	Variability float64
	// Seed drives the preset choice in auto/varied mode. The same seed
	// always resolves to the same preset.
	Seed int64
}

var stylePresets = map[string]string{
	"concise":   "Keep it tight. 4–6 bullets max. Avoid subheadings unless necessary.",
	"deep-dive": "Provide rich sections with 'Why it matters', 'Trade-offs', and a short example.",
	"mentor":    "Use a coaching voice. Add 'Pitfalls' and 'What to practice' sections when helpful.",
	"executive": "Lead with outcomes and business impact. Use short paragraphs and a 'Bottom line' section.",
	"faq":       "Answer as an FAQ: 4–6 Q→A pairs covering the topic succinctly.",
	"qa":        "Use a Q→A dialogue style for key points, then a brief summary.",
	"checklist": "Present an actionable checklist with clear steps and acceptance criteria.",
	"narrative": "Explain as a narrative walkthrough with sections 'Context → Decision → Result'.",
	"varied":    "Choose any of: concise, deep-dive, mentor, executive, faq, qa, checklist, narrative based on question type.",
}

var presetCandidates = []string{
	"concise", "deep-dive", "mentor", "executive", "faq", "qa", "checklist", "narrative",
}

var toneRules = map[string]string{
	"neutral":   "Neutral, precise, professional.",
	"friendly":  "Warm, approachable, but still professional.",
	"mentor":    "Supportive, coaching tone with practical tips.",
	"executive": "Crisp, outcome-focused, confident.",
	"academic":  "Formal, rigorous definitions and citations where appropriate.",
	"coaching":  "Encouraging, step-by-step guidance.",
}

const defaultToneRule = "Neutral, precise, professional."

var layoutRules = map[string]string{
	"bullets":   "Prefer bullets with minimal headings.",
	"narrative": "Short paragraphs, minimal headings.",
	"qa":        "Q→A pairs.",
	"faq":       "FAQ format.",
	"checklist": "Checklist of steps.",
	"pros-cons": "Pros/Cons section included.",
	"steps":     "Numbered steps first, details later.",
}

const defaultLayoutRule = "Use judgement for best readability."

// ResolveStyleMode maps auto/varied to a concrete preset name. Other modes
// pass through unchanged (lowercased), even when unknown.
func ResolveStyleMode(p StyleParams) string {
	mode := strings.ToLower(strings.TrimSpace(p.Mode))
	if mode == "" {
		mode = "auto"
	}
	if mode != "auto" && mode != "varied" {
		return mode
	}
	v := p.Variability
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	if v > 0 {
		rng := rand.New(rand.NewSource(p.Seed))
		return presetCandidates[rng.Intn(len(presetCandidates))]
	}
	return "executive"
}

// styleOverrides builds the trailing style-and-tone block. It is always the
// last thing appended to a prompt so its rules win over earlier sections.
func styleOverrides(p StyleParams) string {
	mode := ResolveStyleMode(p)

	toneRule, ok := toneRules[strings.ToLower(p.Tone)]
	if !ok {
		toneRule = defaultToneRule
	}
	layoutRule, ok := layoutRules[strings.ToLower(p.Layout)]
	if !ok {
		layoutRule = defaultLayoutRule
	}
	presetRule := stylePresets[mode]

	return "\n\nStyle & Tone Overrides:" +
		fmt.Sprintf("\n- Tone: %s", toneRule) +
		fmt.Sprintf("\n- Layout preference: %s", layoutRule) +
		fmt.Sprintf("\n- Style preset: %s — %s", mode, presetRule) +
		"\n- Vary headings and bullet density to avoid repetitive structure; choose the lightest structure that conveys clarity." +
		"\n- Do not force the earlier template sections if brevity or narrative works better for this question."
}
