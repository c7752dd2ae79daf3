// SPDX-License-Identifier: MIT
package engine

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/harvard-vpal/alosi-go/estimator"
	"github.com/harvard-vpal/alosi-go/matrix"
)

// CellRef identifies one (activity, knowledge component) cell of a Q×K
// parameter matrix.
type CellRef struct {
	Activity int
	KC       int
}

// TrainReport summarizes one Train cycle: the newly written matrices and
// the pre-fill "with NaN" diagnostic views exposing exactly which cells
// training could not estimate (insufficient evidence or degeneracy).
type TrainReport struct {
	Guess, Slip, Transit *matrix.Dense
	MasteryPrior         []float64

	GuessWithNaN, SlipWithNaN, TransitWithNaN *matrix.Dense
	MasteryPriorWithNaN                       []float64
}

// Converged reports whether r.Guess is element-wise close to prevGuess
// within rtol/atol, i.e. whether this Train cycle left the guess matrix
// unchanged beyond numeric noise (true means it did not move).
func (r TrainReport) Converged(prevGuess *matrix.Dense, rtol, atol float64) (bool, error) {
	return matrix.AllClose(r.Guess, prevGuess, rtol, atol)
}

// SparseCells lists every (activity, KC) cell across guess/slip/transit
// that training could not re-estimate (it fell back to the prior value).
func (r TrainReport) SparseCells() []CellRef {
	var out []CellRef
	for _, m := range []*matrix.Dense{r.GuessWithNaN, r.SlipWithNaN, r.TransitWithNaN} {
		if m == nil {
			continue
		}
		rows, cols := m.Rows(), m.Cols()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				v, err := m.At(i, j)
				if err == nil && math.IsNaN(v) {
					out = append(out, CellRef{Activity: i, KC: j})
				}
			}
		}
	}
	return out
}

type trainSnapshot struct {
	guess, slip, transit *matrix.Dense
	masteryPrior         []float64
	records              []estimator.ScoreRecord
}

// Train runs one synchronous batch re-estimation cycle: it reads the
// current parameters and score log, re-estimates guess/slip/transit and
// the mastery prior, and writes the results back to Store. The four
// writebacks are separate Store calls issued in order (guess, slip,
// transit, mastery prior); if one fails, the writes before it stay applied
// and are not rolled back.
func (e *Engine) Train(ctx context.Context) (TrainReport, error) {
	snap, err := e.readSnapshot(ctx)
	if err != nil {
		return TrainReport{}, err
	}

	result, err := estimator.Estimate(estimator.EstimateInputs{
		Records:              snap.records,
		Guess:                snap.guess,
		Slip:                 snap.slip,
		Transit:              snap.transit,
		MasteryPrior:         snap.masteryPrior,
		RelevanceThreshold:   e.cfg.RelevanceThreshold,
		InformationThreshold: e.cfg.InformationThreshold,
		RemoveDegeneracy:     e.cfg.RemoveDegeneracy,
		Epsilon:              e.cfg.Epsilon,
	})
	if err != nil {
		return TrainReport{}, err
	}

	if err := e.writeResult(ctx, result); err != nil {
		return TrainReport{}, err
	}

	if e.cfg.Logger != nil {
		e.cfg.Logger.Info().
			Int("records", len(snap.records)).
			Msg("train complete")
	}

	return TrainReport{
		Guess: result.Guess, Slip: result.Slip, Transit: result.Transit, MasteryPrior: result.MasteryPrior,
		GuessWithNaN: result.GuessWithNaN, SlipWithNaN: result.SlipWithNaN, TransitWithNaN: result.TransitWithNaN,
		MasteryPriorWithNaN: result.MasteryPriorWithNaN,
	}, nil
}

// TrainAsync is Train's cancellable, concurrent-I/O twin: the read stage
// fetches guess/slip/transit/mastery-prior/scores concurrently, the
// estimation itself runs as pure in-memory computation between the two
// I/O stages, and the write stage issues the four writebacks concurrently
// (a failed writeback does not roll back the others).
// ctx cancellation is only observed at storage boundaries — the estimation
// step always runs to completion once started, since it is cheap relative
// to a round trip to Store.
func (e *Engine) TrainAsync(ctx context.Context) (TrainReport, error) {
	snap, err := e.readSnapshotConcurrent(ctx)
	if err != nil {
		return TrainReport{}, err
	}

	result, err := estimator.Estimate(estimator.EstimateInputs{
		Records:              snap.records,
		Guess:                snap.guess,
		Slip:                 snap.slip,
		Transit:              snap.transit,
		MasteryPrior:         snap.masteryPrior,
		RelevanceThreshold:   e.cfg.RelevanceThreshold,
		InformationThreshold: e.cfg.InformationThreshold,
		RemoveDegeneracy:     e.cfg.RemoveDegeneracy,
		Epsilon:              e.cfg.Epsilon,
	})
	if err != nil {
		return TrainReport{}, err
	}

	if err := e.writeResultConcurrent(ctx, result); err != nil {
		return TrainReport{}, err
	}

	return TrainReport{
		Guess: result.Guess, Slip: result.Slip, Transit: result.Transit, MasteryPrior: result.MasteryPrior,
		GuessWithNaN: result.GuessWithNaN, SlipWithNaN: result.SlipWithNaN, TransitWithNaN: result.TransitWithNaN,
		MasteryPriorWithNaN: result.MasteryPriorWithNaN,
	}, nil
}

func (e *Engine) readSnapshot(ctx context.Context) (trainSnapshot, error) {
	var snap trainSnapshot
	var err error
	if snap.guess, err = e.store.Guess(ctx); err != nil {
		return trainSnapshot{}, err
	}
	if snap.slip, err = e.store.Slip(ctx); err != nil {
		return trainSnapshot{}, err
	}
	if snap.transit, err = e.store.Transit(ctx); err != nil {
		return trainSnapshot{}, err
	}
	if snap.masteryPrior, err = e.store.MasteryPrior(ctx); err != nil {
		return trainSnapshot{}, err
	}
	if snap.records, err = e.store.Scores(ctx); err != nil {
		return trainSnapshot{}, err
	}
	return snap, nil
}

func (e *Engine) readSnapshotConcurrent(ctx context.Context) (trainSnapshot, error) {
	g, gctx := errgroup.WithContext(ctx)
	var snap trainSnapshot

	g.Go(func() error {
		m, err := e.store.Guess(gctx)
		snap.guess = m
		return err
	})
	g.Go(func() error {
		m, err := e.store.Slip(gctx)
		snap.slip = m
		return err
	})
	g.Go(func() error {
		m, err := e.store.Transit(gctx)
		snap.transit = m
		return err
	})
	g.Go(func() error {
		v, err := e.store.MasteryPrior(gctx)
		snap.masteryPrior = v
		return err
	})
	g.Go(func() error {
		v, err := e.store.Scores(gctx)
		snap.records = v
		return err
	})

	if err := g.Wait(); err != nil {
		return trainSnapshot{}, err
	}
	return snap, nil
}

func (e *Engine) writeResult(ctx context.Context, result estimator.EstimateResult) error {
	if err := e.store.WriteGuess(ctx, result.Guess); err != nil {
		return err
	}
	if err := e.store.WriteSlip(ctx, result.Slip); err != nil {
		return err
	}
	if err := e.store.WriteTransit(ctx, result.Transit); err != nil {
		return err
	}
	return e.store.WriteMasteryPrior(ctx, result.MasteryPrior)
}

func (e *Engine) writeResultConcurrent(ctx context.Context, result estimator.EstimateResult) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.store.WriteGuess(gctx, result.Guess) })
	g.Go(func() error { return e.store.WriteSlip(gctx, result.Slip) })
	g.Go(func() error { return e.store.WriteTransit(gctx, result.Transit) })
	g.Go(func() error { return e.store.WriteMasteryPrior(gctx, result.MasteryPrior) })
	return g.Wait()
}
