package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"spamguard/internal/services/api/spamcheck/domain"
	spammod "spamguard/internal/services/api/spamcheck/module"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxLine bounds one JSON line
const maxLine = 4 << 20

type batchOptions struct {
	workers int
	html    bool
}

// NewBatchCmd creates the batch command
func NewBatchCmd() *cobra.Command {
	var o batchOptions
	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Score JSON lines of posts",
		Long: `Read one JSON object per line ({"title","content","type","format"}) from file
or stdin, score them concurrently, and write one JSON result per line in input order.
Blank lines are skipped. A summary goes to stderr.`,
		Example: `  spamguard batch posts.jsonl > results.jsonl
  jq -c '.[]' export.json | spamguard batch --workers 8`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return runBatch(cmd, in, o)
		},
	}
	cmd.Flags().IntVarP(&o.workers, "workers", "w", runtime.GOMAXPROCS(0), "Concurrent scorers")
	cmd.Flags().BoolVar(&o.html, "html", false, "Default format is html for lines that do not set one")
	return cmd
}

// readLines decodes every non blank line, reporting the 1-based line number on failure
func readLines(r io.Reader) ([]domain.CheckRequest, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)

	var reqs []domain.CheckRequest
	for n := 1; sc.Scan(); n++ {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(line))
		dec.DisallowUnknownFields()
		var req domain.CheckRequest
		if err := dec.Decode(&req); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		reqs = append(reqs, req)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return reqs, nil
}

func runBatch(cmd *cobra.Command, in io.Reader, o batchOptions) error {
	reqs, err := readLines(in)
	if err != nil {
		return err
	}

	svc, err := checker(cmd, spammod.Options{StripHTML: o.html})
	if err != nil {
		return err
	}

	workers := o.workers
	if workers < 1 {
		workers = 1
	}

	results := make([]domain.CheckResult, len(reqs))
	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)
	for i, req := range reqs {
		g.Go(func() error {
			res, err := svc.Check(gctx, req)
			if err != nil {
				return fmt.Errorf("item %d: %w", i+1, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	enc := json.NewEncoder(w)
	spam := 0
	for _, res := range results {
		if res.IsSpam {
			spam++
		}
		if err := enc.Encode(res); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d checked, %d spam\n", len(results), spam)
	return nil
}
