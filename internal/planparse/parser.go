package planparse

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const overviewLimit = 500

// Timeline is a placeholder for all generated plans; the generator does not
// commit to a fixed duration.
const Timeline = "custom"

// Plan is the structured form of free-form generated plan text.
type Plan struct {
	Overview string  `json:"overview"`
	Phases   []Phase `json:"phases"`
	Timeline string  `json:"timeline"`
}

type Phase struct {
	Title string   `json:"title"`
	Tasks []string `json:"tasks"`
}

var headerKeywords = []string{"week", "phase", "day", "month"}

const taskPrefixCutset = "-• .0123456789"

// Parse walks the plan text line by line. A line mentioning a scheduling
// keyword (week/phase/day/month) opens a new phase; bullet or numbered lines
// under an open phase become its tasks. Lines matching neither rule, and
// task-like lines before the first header, are dropped. This is a heuristic
// over unconstrained LLM output, not a grammar: a bulleted line that also
// mentions a keyword ("- Week 1 kickoff") counts as a header.
func Parse(planText string) Plan {
	plan := Plan{
		Overview: overview(planText),
		Phases:   []Phase{},
		Timeline: Timeline,
	}

	var current *Phase
	for _, raw := range strings.Split(planText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if isPhaseHeader(line) {
			if current != nil {
				plan.Phases = append(plan.Phases, *current)
			}
			current = &Phase{Title: line, Tasks: []string{}}
			continue
		}
		if current != nil && isTaskLine(line) {
			current.Tasks = append(current.Tasks, strings.TrimLeft(line, taskPrefixCutset))
		}
	}
	if current != nil {
		plan.Phases = append(plan.Phases, *current)
	}

	return plan
}

func isPhaseHeader(line string) bool {
	lower := strings.ToLower(line)
	for _, keyword := range headerKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func isTaskLine(line string) bool {
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") {
		return true
	}
	first, _ := utf8.DecodeRuneInString(line)
	return unicode.IsDigit(first)
}

// overview is the first 500 characters of the raw text, a crude summary
// rather than an extracted section.
func overview(planText string) string {
	runes := []rune(planText)
	if len(runes) <= overviewLimit {
		return planText
	}
	return string(runes[:overviewLimit])
}
