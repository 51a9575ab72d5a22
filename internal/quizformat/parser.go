// Package quizformat parses the plain-text quiz micro-format the completion
// provider is instructed to emit:
//
//	1. Question text goes here
//	A) Option A
//	B) Option B
//	C) Option C
//	D) Option D
//	**Correct Answer: C**
//
// Model output drifts, so parsing is deliberately lenient: blocks without the
// correct-answer marker are skipped, short blocks keep whatever options they
// have, and an unreadable answer letter falls back to "A". Tightening any of
// this changes what users see, so the fallbacks are load-bearing.
package quizformat

import (
	"regexp"
	"strings"
)

const answerMarker = "**Correct Answer:"

var (
	correctLetterRe = regexp.MustCompile(`Correct Answer:\s*([A-D])`)
	optionPrefixRe  = regexp.MustCompile(`^[A-D]\W+\s*`)
)

// Question is one parsed multiple-choice question. JSON field names match
// the stored quiz_json document shape.
type Question struct {
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
	Correct string   `json:"correct"`
}

// SkippedBlock records a candidate block the parser rejected, and why.
type SkippedBlock struct {
	Block  string
	Reason string
}

// Parse splits raw provider output on blank-line boundaries and extracts
// every block that carries the correct-answer marker.
func Parse(raw string) ([]Question, []SkippedBlock) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), "\r\n", "\n")

	var questions []Question
	var skipped []SkippedBlock
	for _, block := range strings.Split(normalized, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if !strings.Contains(block, answerMarker) {
			skipped = append(skipped, SkippedBlock{Block: block, Reason: "missing correct-answer marker"})
			continue
		}

		lines := strings.Split(block, "\n")
		q := Question{
			Prompt:  strings.TrimSpace(lines[0]),
			Correct: correctLetter(lines),
		}

		// Options are positional: lines 2-5, however many exist. A short
		// block stays in as degraded data rather than being rejected.
		end := len(lines)
		if end > 5 {
			end = 5
		}
		for _, opt := range lines[1:end] {
			q.Options = append(q.Options, strings.TrimSpace(optionPrefixRe.ReplaceAllString(opt, "")))
		}
		questions = append(questions, q)
	}
	return questions, skipped
}

func correctLetter(lines []string) string {
	for _, line := range lines {
		if !strings.Contains(line, "Correct Answer") {
			continue
		}
		if m := correctLetterRe.FindStringSubmatch(line); m != nil {
			return m[1]
		}
		return "A"
	}
	return "A"
}
