// Package main provides completion-bench, a load generator for a running
// completiond instance. Explicitly non-core per spec.md §1.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shockdb/stringspace/internal/bench"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:7700", "address of a running completiond instance")
	op := flag.String("op", "best-completions", "operation to benchmark (prefix, substring, fuzzy-subsequence, similar, best-completions)")
	queries := flag.String("queries", "a,he,wor,impl,open", "comma-separated queries to sample from")
	requests := flag.Int("requests", 2000, "number of timed requests")
	warmup := flag.Int("warmup", 100, "number of warmup requests before timing starts")
	concurrency := flag.Int("concurrency", 8, "number of concurrent connections")
	jsonOut := flag.Bool("json", false, "print the result as JSON instead of a summary line")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: completion-bench [flags]\n\n")
		fmt.Fprint(os.Stderr, "Issues a stream of requests against a running completiond and reports latency percentiles.\n\n")
		fmt.Fprint(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := bench.Run(ctx, bench.Options{
		Addr:        *addr,
		Op:          *op,
		Queries:     strings.Split(*queries, ","),
		Requests:    *requests,
		Warmup:      *warmup,
		Concurrency: *concurrency,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "completion-bench: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "completion-bench: %v\n", err)
			os.Exit(1)
		}

		return
	}

	fmt.Println(result.String())
}
