package cli

import (
	"context"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/shockdb/stringspace/internal/bench"
)

// BenchmarkCmd delegates to the completion-bench load-generator library
// against a already-running completiond instance.
func BenchmarkCmd() *Command {
	flags := flag.NewFlagSet("benchmark", flag.ContinueOnError)

	addr := flags.String("addr", "127.0.0.1:7700", "Address of a running completiond instance")
	op := flags.String("op", "best-completions", "Operation to benchmark")
	queries := flags.String("queries", "a,he,wor", "Comma-separated queries to sample from")
	requests := flags.Int("requests", 1000, "Number of timed requests")
	warmup := flags.Int("warmup", 50, "Number of warmup requests")
	concurrency := flags.Int("concurrency", 4, "Number of concurrent connections")

	return &Command{
		Flags: flags,
		Usage: "benchmark [--addr HOST:PORT] [--op OP] [--requests N]",
		Short: "Run a load-test benchmark against a running completiond.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			result, err := bench.Run(ctx, bench.Options{
				Addr:        *addr,
				Op:          *op,
				Queries:     strings.Split(*queries, ","),
				Requests:    *requests,
				Warmup:      *warmup,
				Concurrency: *concurrency,
			})
			if err != nil {
				return err
			}

			o.Println(result.String())

			return nil
		},
	}
}
