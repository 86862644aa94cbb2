package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
	"github.com/yanqian/faq-chatbot/internal/infra/faqcatalog"
)

// ErrEmptyCatalog is returned by check when no usable entries were loaded.
var ErrEmptyCatalog = errors.New("catalog has no usable entries")

// CheckReport summarizes a loaded catalog.
type CheckReport struct {
	Path       string      `json:"path"`
	Entries    int         `json:"entries"`
	Duplicates []Duplicate `json:"duplicates"`
}

// Duplicate lists the 1-based positions sharing one normalized question.
// Only the first position is ever answered.
type Duplicate struct {
	Question  string `json:"question"`
	Positions []int  `json:"positions"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the catalog and report entries and duplicate questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, cmd)
		},
	}
}

func runCheck(opts *RootOptions, cmd *cobra.Command) error {
	logger := opts.logger(cmd.ErrOrStderr())
	entries := faqcatalog.NewFileSource(opts.Catalog, logger).Entries(cmd.Context())
	report := buildReport(opts.Catalog, entries)

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "%s: %d entries\n", report.Path, report.Entries)
		for _, dup := range report.Duplicates {
			fmt.Fprintf(out, "duplicate %q at positions %v\n", dup.Question, dup.Positions)
		}
	}

	if report.Entries == 0 {
		return ErrEmptyCatalog
	}
	return nil
}

func buildReport(path string, entries []faq.Entry) CheckReport {
	report := CheckReport{Path: path, Entries: len(entries), Duplicates: []Duplicate{}}
	positions := make(map[string][]int)
	var order []string
	for i, entry := range entries {
		key := faq.NormalizeQuestion(entry.Question)
		if _, seen := positions[key]; !seen {
			order = append(order, key)
		}
		positions[key] = append(positions[key], i+1)
	}
	for _, key := range order {
		if len(positions[key]) > 1 {
			report.Duplicates = append(report.Duplicates, Duplicate{Question: key, Positions: positions[key]})
		}
	}
	return report
}
