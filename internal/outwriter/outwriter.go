// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteTeams prints team summaries using the configured output format.
func (ow *OutWriter) WriteTeams(results []schema.TeamSummary, cfg *contract.Config) error {
	return PrintTeamResults(results, cfg)
}

// WriteSeasons prints season sell-through aggregates using the configured output format.
func (ow *OutWriter) WriteSeasons(results []schema.TeamSeasonAggregate, cfg *contract.Config, duration time.Duration) error {
	return PrintSeasonResults(results, cfg, duration)
}

// GetMaxTableLabelWidth calculates the maximum width for team and stadium
// labels in table output based on terminal width.
func GetMaxTableLabelWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the numeric columns with borders and padding
	baseWidth := 50

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable label width
		return 15
	}
	if available > 40 {
		// Maximum label width to keep rows compact
		return 40
	}
	return available
}
