package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"spamguard/internal/services/api/spamcheck/domain"
	spammod "spamguard/internal/services/api/spamcheck/module"

	"github.com/spf13/cobra"
)

// ErrSpam is returned by check --fail when the post is classified as spam
var ErrSpam = errors.New("post classified as spam")

type checkOptions struct {
	title   string
	content string
	answer  bool
	html    bool
	asJSON  bool
	fail    bool
}

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	var o checkOptions
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Score one question or answer",
		Long: `Score one post. Content comes from --content, or from stdin when the flag is omitted.
Questions need --title; pass --answer to score content alone.`,
		Example: `  spamguard check --title "Cheap followers" --content "click here to buy now"
  cat answer.html | spamguard check --answer --html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, o)
		},
	}

	cmd.Flags().StringVarP(&o.title, "title", "t", "", "Question title")
	cmd.Flags().StringVarP(&o.content, "content", "c", "", "Post content (default: read stdin)")
	cmd.Flags().BoolVarP(&o.answer, "answer", "a", false, "Score as an answer (no title)")
	cmd.Flags().BoolVar(&o.html, "html", false, "Content is HTML; strip markup before scoring")
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&o.fail, "fail", false, "Exit non-zero when the post is spam")

	return cmd
}

func runCheck(cmd *cobra.Command, o checkOptions) error {
	// an explicit --content "" is empty content, not a request for stdin
	if !cmd.Flags().Changed("content") {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		o.content = strings.TrimRight(string(data), "\r\n")
	}

	svc, err := checker(cmd, spammod.Options{})
	if err != nil {
		return err
	}

	req := domain.CheckRequest{Title: o.title, Content: o.content, Type: domain.KindQuestion, Format: domain.FormatText}
	if o.answer {
		req.Type = domain.KindAnswer
	}
	if o.html {
		req.Format = domain.FormatHTML
	}

	res, err := svc.Check(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if o.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		printResult(out, res)
	}

	if o.fail && res.IsSpam {
		return ErrSpam
	}
	return nil
}

func printResult(w io.Writer, res domain.CheckResult) {
	verdict := "ok"
	if res.IsSpam {
		verdict = "SPAM"
	}
	fmt.Fprintf(w, "%s score=%d threshold=%d\n", verdict, res.SpamScore, res.Threshold)
	for _, t := range res.Triggers {
		fmt.Fprintf(w, "  +%-3d %-26s %s\n", t.Weight, t.Rule, t.Reason)
	}
}
