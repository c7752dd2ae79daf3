// SPDX-License-Identifier: MIT
//
// Package engine wires the numeric packages into the Store contract: the
// Engine facade answers "what should this learner do next" (Recommend),
// folds one observed score into a learner's mastery (UpdateFromScore), and
// periodically re-estimates guess/slip/transit/mastery-prior from the
// accumulated score log (Train / TrainAsync).
package engine

import (
	"context"

	"github.com/harvard-vpal/alosi-go/bkterr"
	"github.com/harvard-vpal/alosi-go/estimator"
	"github.com/harvard-vpal/alosi-go/mastery"
	"github.com/harvard-vpal/alosi-go/recommend"
	"github.com/harvard-vpal/alosi-go/relevance"
)

// Engine is the recommendation facade. It holds no state of its own beyond
// its Config; all persistent state lives behind Store.
type Engine struct {
	store Store
	cfg   Config
}

// New builds an Engine backed by store, applying opts over the documented
// defaults.
func New(store Store, opts ...Option) *Engine {
	return &Engine{store: store, cfg: gatherOptions(opts...)}
}

// Recommend picks the single best-next activity index for learner, per the
// weighted P/R/C/D scorer. Ties break to the lowest activity index.
func (e *Engine) Recommend(ctx context.Context, learner int64) (int, error) {
	guess, err := e.store.Guess(ctx)
	if err != nil {
		return 0, err
	}
	slip, err := e.store.Slip(ctx)
	if err != nil {
		return 0, err
	}
	difficulty, err := e.store.Difficulty(ctx)
	if err != nil {
		return 0, err
	}
	prereqs, err := e.store.Prereqs(ctx)
	if err != nil {
		return 0, err
	}
	learnerMastery, err := e.store.Mastery(ctx, learner)
	if err != nil {
		return 0, err
	}
	rLast, err := e.store.LastAttemptedRelevance(ctx, learner)
	if err != nil {
		return 0, err
	}

	rel, err := relevance.FromOdds(guess, slip)
	if err != nil {
		return 0, err
	}

	scores, breakdown, err := recommend.ScoreWithBreakdown(recommend.ScoreInputs{
		Relevance:  rel,
		Mastery:    learnerMastery,
		Prereq:     prereqs,
		Difficulty: difficulty,
		Thresholds: e.cfg.Thresholds,
		Weights:    e.cfg.Weights,
		RLast:      rLast,
	})
	if err != nil {
		return 0, err
	}

	activity := recommend.Argmax(scores)

	if e.cfg.Logger != nil {
		e.cfg.Logger.Debug().
			Int64("learner", learner).
			Int("activity", activity).
			Floats64("scores", scores).
			Floats64("p", breakdown.P).
			Floats64("r", breakdown.R).
			Floats64("c", breakdown.C).
			Floats64("d", breakdown.D).
			Msg("recommend")
	}

	return activity, nil
}

// UpdateFromScore folds one new observation into learner's mastery and then
// appends it to the score log. The ordering is load-bearing: mastery must
// be durable before the score that produced it is recorded, so a crash
// between the two steps never leaves a score on record whose mastery
// update was lost.
func (e *Engine) UpdateFromScore(ctx context.Context, learner, activity int64, score float64) error {
	if score < 0 || score > 1 {
		return bkterr.NewValidationError("UpdateFromScore", "score", "must be in [0,1]")
	}

	guess, err := e.store.Guess(ctx)
	if err != nil {
		return err
	}
	slip, err := e.store.Slip(ctx)
	if err != nil {
		return err
	}
	transit, err := e.store.Transit(ctx)
	if err != nil {
		return err
	}
	current, err := e.store.Mastery(ctx, learner)
	if err != nil {
		return err
	}

	guessRow, err := guess.Row(int(activity))
	if err != nil {
		return err
	}
	slipRow, err := slip.Row(int(activity))
	if err != nil {
		return err
	}
	transitRow, err := transit.Row(int(activity))
	if err != nil {
		return err
	}

	updated, err := mastery.Update(current, score, guessRow, slipRow, transitRow, e.cfg.Epsilon)
	if err != nil {
		return err
	}

	if err := e.store.WriteMastery(ctx, learner, updated); err != nil {
		return err
	}

	return e.store.AppendScore(ctx, estimator.ScoreRecord{Learner: learner, Activity: activity, Score: score})
}
