// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/harvard-vpal/alosi-go/engine"
	"github.com/harvard-vpal/alosi-go/matrix"
	"github.com/harvard-vpal/alosi-go/memstore"
	"github.com/harvard-vpal/alosi-go/recommend"
)

func newRunCmd() *cobra.Command {
	var (
		activities int
		kcs        int
		learners   int
		attempts   int
		seed       int64
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Seed a synthetic problem, simulate attempts, then train and recommend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.Context(), runConfig{
				activities: activities,
				kcs:        kcs,
				learners:   learners,
				attempts:   attempts,
				seed:       seed,
				verbose:    verbose,
			})
		},
	}

	cmd.Flags().IntVar(&activities, "activities", 8, "number of activities (Q)")
	cmd.Flags().IntVar(&kcs, "kcs", 3, "number of knowledge components (K)")
	cmd.Flags().IntVar(&learners, "learners", 25, "number of simulated learners")
	cmd.Flags().IntVar(&attempts, "attempts", 10, "attempts per learner")
	cmd.Flags().Int64Var(&seed, "seed", 1, "PRNG seed for the synthetic workload")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "emit debug-level recommend/train logging")

	return cmd
}

type runConfig struct {
	activities, kcs, learners, attempts int
	seed                                int64
	verbose                             bool
}

func runBench(ctx context.Context, cfg runConfig) error {
	rng := rand.New(rand.NewSource(cfg.seed))

	store, err := seedStore(rng, cfg.activities, cfg.kcs)
	if err != nil {
		return err
	}

	var logger zerolog.Logger
	opts := []engine.Option{}
	if cfg.verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).Level(zerolog.DebugLevel)
		opts = append(opts, engine.WithLogger(&logger))
	}
	e := engine.New(store, opts...)

	for learner := 0; learner < cfg.learners; learner++ {
		for attempt := 0; attempt < cfg.attempts; attempt++ {
			activity, err := e.Recommend(ctx, int64(learner))
			if err != nil {
				return fmt.Errorf("recommend(learner=%d): %w", learner, err)
			}
			score := float64(rng.Intn(2))
			if err := e.UpdateFromScore(ctx, int64(learner), int64(activity), score); err != nil {
				return fmt.Errorf("update(learner=%d, activity=%d): %w", learner, activity, err)
			}
		}
	}

	preGuess := store.GuessSnapshot()

	report, err := e.Train(ctx)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	sparse := report.SparseCells()
	fmt.Printf("trained on %d learners x %d attempts; %d of %d guess/slip/transit cells could not be re-estimated\n",
		cfg.learners, cfg.attempts, len(sparse), 3*cfg.activities*cfg.kcs)

	converged, err := report.Converged(preGuess, 1e-3, 1e-6)
	if err != nil {
		return fmt.Errorf("converged: %w", err)
	}
	if converged {
		fmt.Println("guess matrix unchanged by this training cycle")
	} else {
		delta, err := matrix.Sub(report.Guess, preGuess)
		if err != nil {
			return fmt.Errorf("delta: %w", err)
		}
		rowDelta, err := matrix.RowSums(delta)
		if err != nil {
			return fmt.Errorf("row delta: %w", err)
		}
		fmt.Printf("guess matrix moved; per-activity odds delta sums: %v\n", rowDelta)
	}

	return nil
}

func seedStore(rng *rand.Rand, q, k int) (*memstore.Store, error) {
	rowsOf := func(lo, hi float64) ([][]float64, error) {
		rows := make([][]float64, q)
		for i := range rows {
			row := make([]float64, k)
			for j := range row {
				row[j] = lo + rng.Float64()*(hi-lo)
			}
			rows[i] = row
		}
		return rows, nil
	}

	guessRows, _ := rowsOf(0.1, 0.3)
	slipRows, _ := rowsOf(0.05, 0.2)
	transitRows, _ := rowsOf(0.02, 0.1)

	guess, err := matrix.NewDenseFromRows(guessRows)
	if err != nil {
		return nil, err
	}
	slip, err := matrix.NewDenseFromRows(slipRows)
	if err != nil {
		return nil, err
	}
	transit, err := matrix.NewDenseFromRows(transitRows)
	if err != nil {
		return nil, err
	}
	prereqs, err := matrix.NewDense(k, k)
	if err != nil {
		return nil, err
	}

	difficulty := make([]float64, q)
	for i := range difficulty {
		difficulty[i] = rng.Float64()
	}
	masteryPrior := make([]float64, k)
	for i := range masteryPrior {
		masteryPrior[i] = 0.1
	}

	return memstore.New(memstore.Seed{
		Guess: guess, Slip: slip, Transit: transit,
		Difficulty:   difficulty,
		Prereqs:      prereqs,
		MasteryPrior: masteryPrior,
		Weights:      recommend.Weights{Wp: 1, Wr: 1, Wc: 1, Wd: 1},
		Thresholds:   recommend.Thresholds{RStar: 0, LStar: 0},
	}), nil
}
