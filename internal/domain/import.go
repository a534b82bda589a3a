package domain

import "fmt"

// ImportMode selects between the two import phases.
type ImportMode string

const (
	// ImportModePreview parses and validates only. It never writes.
	ImportModePreview ImportMode = "preview"
	// ImportModeCommit deduplicates and persists.
	ImportModeCommit ImportMode = "import"
)

// ParseImportMode accepts "preview", "import" and the alias "commit".
// An empty string means preview, the side-effect free default.
func ParseImportMode(s string) (ImportMode, error) {
	switch s {
	case "", string(ImportModePreview):
		return ImportModePreview, nil
	case string(ImportModeCommit), "commit":
		return ImportModeCommit, nil
	}
	return "", fmt.Errorf("%w: mode must be \"preview\" or \"import\"", ErrValidation)
}

// ImportOutcome names the terminal state an import run ended in.
type ImportOutcome string

const (
	OutcomeNoValidTrips ImportOutcome = "no_valid_trips"
	OutcomePreview      ImportOutcome = "preview"
	OutcomeNothingNew   ImportOutcome = "nothing_new"
	OutcomeImported     ImportOutcome = "imported"
)

// ImportRequest is one import invocation. UserID must already be verified.
type ImportRequest struct {
	Raw    string
	Mode   ImportMode
	UserID string
}

// ImportResult summarises an import run.
// Sample holds at most SampleSize valid trips and is filled in preview only.
type ImportResult struct {
	Outcome    ImportOutcome
	Total      int
	Valid      int
	Invalid    int
	Rejections []Rejection
	Sample     []Trip
	Imported   int
	Duplicates int
	Message    string
}

// SampleSize bounds ImportResult.Sample.
const SampleSize = 5
