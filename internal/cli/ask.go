package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
	"github.com/yanqian/faq-chatbot/internal/infra/faqcatalog"
)

// NewAskCommand creates the ask command.
func NewAskCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Answer a question from the catalog",
		Long: `Answer a question the same way the chat endpoint does.

Example:
  faqctl ask --catalog faqs.json what are your hours`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(rootOpts, cmd, strings.Join(args, " "))
		},
	}
}

func runAsk(opts *RootOptions, cmd *cobra.Command, question string) error {
	logger := opts.logger(cmd.ErrOrStderr())
	matcher := faq.NewMatcher(faqcatalog.NewFileSource(opts.Catalog, logger), logger)
	result := matcher.Match(cmd.Context(), question)

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	_, err := fmt.Fprintln(out, result.Answer)
	return err
}
