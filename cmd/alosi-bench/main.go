// SPDX-License-Identifier: MIT
//
// Command alosi-bench exercises the recommendation engine end to end
// against an in-memory Store: it seeds synthetic guess/slip/transit
// matrices, drives a batch of simulated learners through Recommend and
// UpdateFromScore, runs Train, and reports what changed.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "alosi-bench",
		Short: "Drive the adaptive-learning engine against a synthetic workload",
	}
	root.AddCommand(newRunCmd())
	return root
}
