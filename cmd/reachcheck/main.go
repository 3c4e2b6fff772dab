// Command reachcheck runs the parallel covering reachability algorithm
// against one of the illustrative transition systems in
// internal/demosts and reports the outcome and aggregate statistics.
//
// Configuration:
//   - --threads: number of worker goroutines (default 1)
//   - --order: BFS or DFS (default BFS)
//   - --bucket-count: cover-graph bucket count (default 32768)
//   - --notify-every: progress log interval in visited nodes (default 0, off)
//   - --config: optional TOML file overriding the above (see internal/config)
//
// Example usage:
//
//	# Run the linear-chain demo with four worker threads
//	reachcheck run linear --threads 4
//
//	# Run the large synthetic demo, logging progress every 1000 nodes
//	reachcheck run large --notify-every 1000
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dreamware/reachcheck/internal/config"
	"github.com/dreamware/reachcheck/internal/coordinator"
	"github.com/dreamware/reachcheck/internal/demosts"
	"github.com/dreamware/reachcheck/internal/sts"
)

// logFatal is a variable to allow mocking a fatal exit in tests. This
// indirection enables test code to intercept fatal errors without
// actually terminating the test process.
var logFatal = func(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		logFatal("reachcheck: %v", err)
	}
}

func newRootCommand() *cobra.Command {
	var cfgPath string
	opts := config.Default()

	root := &cobra.Command{
		Use:   "reachcheck",
		Short: "Parallel covering reachability checker",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "optional TOML config file")
	root.PersistentFlags().IntVar(&opts.Threads, "threads", opts.Threads, "number of worker threads")
	root.PersistentFlags().StringVar(&opts.Order, "order", opts.Order, "work queue discipline: BFS or DFS")
	root.PersistentFlags().IntVar(&opts.BucketCount, "bucket-count", opts.BucketCount, "cover graph bucket count")
	root.PersistentFlags().Uint64Var(&opts.NotifyEvery, "notify-every", opts.NotifyEvery, "progress log interval in visited nodes (0 disables)")
	root.PersistentFlags().StringVar(&opts.CoveringMode, "covering-mode", opts.CoveringMode, "covering preorder: inclusion or simulation")
	root.PersistentFlags().StringSliceVar(&opts.AcceptingLabels, "accepting-labels", opts.AcceptingLabels, "treat any node whose label is in this set as accepting, overriding the demo's own accepting predicate")

	runCmd := &cobra.Command{Use: "run", Short: "Run a demo transition system"}
	runCmd.AddCommand(
		newDemoCommand("linear", "linear chain with no covering and no accepting state", &opts, &cfgPath, func() (sts.TransitionSystem, sts.Accepting) {
			return demosts.LinearChain(4), func(sts.Node) bool { return false }
		}),
		newDemoCommand("branching", "accepting state reachable at depth 2", &opts, &cfgPath, func() (sts.TransitionSystem, sts.Accepting) {
			return demosts.BranchingAcceptingAtDepthTwo()
		}),
		newDemoCommand("covered-sibling", "one sibling directly covers another", &opts, &cfgPath, func() (sts.TransitionSystem, sts.Accepting) {
			return demosts.CoveredSibling(), func(sts.Node) bool { return false }
		}),
		newDemoCommand("diamond", "two paths converge on one representative", &opts, &cfgPath, func() (sts.TransitionSystem, sts.Accepting) {
			return demosts.Diamond(), func(sts.Node) bool { return false }
		}),
		newDemoCommand("large", "synthetic tree with a deep accepting state", &opts, &cfgPath, func() (sts.TransitionSystem, sts.Accepting) {
			return demosts.LargeSynthetic(16, 3)
		}),
	)
	root.AddCommand(runCmd)

	return root
}

func newDemoCommand(name, short string, opts *config.Options, cfgPath *string, build func() (sts.TransitionSystem, sts.Accepting)) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			runOpts := *opts
			if *cfgPath != "" {
				loaded, err := config.Load(*cfgPath)
				if err != nil {
					return err
				}
				runOpts = loaded
			}
			if err := runOpts.Validate(); err != nil {
				return err
			}

			log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
			ts, accepting := build()

			if setter, ok := ts.(sts.CoveringModeSetter); ok {
				setter.SetCoveringMode(runOpts.StsCoveringMode())
			}

			if len(runOpts.AcceptingLabels) > 0 {
				var known []string
				if src, ok := ts.(sts.LabelSource); ok {
					known = src.Labels()
				}
				labelAccepting, err := sts.AcceptingFromLabels(runOpts.AcceptingLabels, known)
				if err != nil {
					return err
				}
				accepting = labelAccepting
			}

			outcome, agg, err := coordinator.Run(context.Background(), runOpts, ts, accepting, log)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "outcome: %s\n", outcome)
			fmt.Fprintf(out, "visited: %d  stored: %d  directly_covered: %d  covered_leaves: %d  covered_nonleaves: %d\n",
				agg.VisitedNodes, agg.StoredNodes, agg.DirectlyCoveredLeaves, agg.CoveredLeaves, agg.CoveredNonLeaves)
			fmt.Fprintf(out, "elapsed: %s  edge_check_total: %s\n", agg.Elapsed, agg.EdgeCheckTotal)
			return nil
		},
	}
}
