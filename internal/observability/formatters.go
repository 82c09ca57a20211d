// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/candidate-pulse/internal/scoring"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResult outputs a human-readable summary of a score result.
func (p *Printer) PrintResult(result *scoring.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Candidate:  %s\n", result.CandidateToken))
	sb.WriteString(fmt.Sprintf("Stage:      %s\n", result.Stage))
	sb.WriteString(fmt.Sprintf("NSS:        %+.3f\n", result.NSS))
	sb.WriteString(fmt.Sprintf("Composite:  %.3f (%s)\n", result.CompositeIndex, result.Bands["overall"]))
	sb.WriteString(fmt.Sprintf("Richness:   %.0f\n", result.Richness))
	if result.IncentiveEligible {
		sb.WriteString("Incentive:  eligible\n")
	} else {
		sb.WriteString("Incentive:  not eligible\n")
	}

	p.printBox("SCORE RESULT", strings.TrimSuffix(sb.String(), "\n"))

	p.printAspects(result)
	p.printQuality(result)
	p.printNarrative(result)
}

// printAspects outputs the extracted aspect sentiment, positives first.
func (p *Printer) printAspects(result *scoring.Result) {
	if len(result.ABSA.Positive) == 0 && len(result.ABSA.Negative) == 0 {
		return
	}

	var sb strings.Builder
	if len(result.ABSA.Positive) > 0 {
		sb.WriteString("Positive:\n")
		count := min(len(result.ABSA.Positive), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.ABSA.Positive[i]))
		}
		if len(result.ABSA.Positive) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.ABSA.Positive)-maxItemsToShow))
		}
	}
	if len(result.ABSA.Negative) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Negative:\n")
		count := min(len(result.ABSA.Negative), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", result.ABSA.Negative[i]))
		}
		if len(result.ABSA.Negative) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.ABSA.Negative)-maxItemsToShow))
		}
	}

	p.printBox("ASPECT SENTIMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// printQuality outputs the text-quality assessment and any gaming flags.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printQuality(result *scoring.Result) {
	if len(result.QualityFlags) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fmt.Sprintf("✅ TEXT QUALITY %.2f, NO FLAGS", result.QualityScore))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %.2f\n", result.QualityScore))
	sb.WriteString(fmt.Sprintf("Diversity: %.2f  Entropy: %.2f\n",
		result.Quality.TypeTokenRatio, result.Quality.Entropy))
	sb.WriteString("\n")
	for i, flag := range result.QualityFlags {
		sb.WriteString(fmt.Sprintf("⚠ %s", flag))
		if i < len(result.QualityFlags)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("TEXT QUALITY FLAGS", sb.String())
}

// printNarrative outputs the recruiter-facing summary and coaching cue.
func (p *Printer) printNarrative(result *scoring.Result) {
	if result.Summary == "" && result.CoachingCue == "" {
		return
	}

	var sb strings.Builder
	sb.WriteString(wrapText(result.Summary, boxWidth-6))
	if result.CoachingCue != "" {
		sb.WriteString("\n\n")
		sb.WriteString(wrapText(result.CoachingCue, boxWidth-6))
	}

	p.printBox("NARRATIVE", sb.String())
}

// wrapText breaks text into lines no longer than width.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > width {
				sb.WriteString("\n")
				lineLen = 0
			} else {
				sb.WriteString(" ")
				lineLen++
			}
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
