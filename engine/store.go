// SPDX-License-Identifier: MIT
package engine

import (
	"context"

	"github.com/harvard-vpal/alosi-go/estimator"
	"github.com/harvard-vpal/alosi-go/matrix"
	"github.com/harvard-vpal/alosi-go/recommend"
)

// Store is the persistence boundary the Engine facade is built against. An
// implementation owns the guess/slip/transit/difficulty/prereq matrices,
// the per-learner mastery vectors, and the append-only score log. All
// methods must be safe for concurrent use; TrainAsync issues concurrent
// reads and concurrent writes against the same Store.
type Store interface {
	// Guess, Slip, and Transit return the current Q×K parameter matrices.
	Guess(ctx context.Context) (*matrix.Dense, error)
	Slip(ctx context.Context) (*matrix.Dense, error)
	Transit(ctx context.Context) (*matrix.Dense, error)

	// Difficulty returns the length-Q activity difficulty vector.
	Difficulty(ctx context.Context) ([]float64, error)

	// Prereqs returns the K×K prerequisite weight matrix.
	Prereqs(ctx context.Context) (*matrix.Dense, error)

	// MasteryPrior returns the length-K default mastery-odds vector assigned
	// to learners with no recorded mastery yet.
	MasteryPrior(ctx context.Context) ([]float64, error)

	// Mastery returns learner's current length-K mastery-odds vector,
	// falling back to MasteryPrior if the learner has none on record.
	Mastery(ctx context.Context, learner int64) ([]float64, error)

	// LastAttemptedRelevance returns the relevance vector (length K) of the
	// activity learner most recently attempted, or nil if learner has no
	// score history yet.
	LastAttemptedRelevance(ctx context.Context, learner int64) ([]float64, error)

	// Scores returns every recorded score, in the order needed for training
	// (chronological within each learner).
	Scores(ctx context.Context) ([]estimator.ScoreRecord, error)

	// Weights and Thresholds return the recommend scorer's current policy.
	Weights(ctx context.Context) (recommend.Weights, error)
	Thresholds(ctx context.Context) (recommend.Thresholds, error)

	// WriteMastery persists learner's new mastery-odds vector.
	WriteMastery(ctx context.Context, learner int64, mastery []float64) error

	// AppendScore records one new score observation. Implementations should
	// make this idempotent against at-least-once delivery.
	AppendScore(ctx context.Context, rec estimator.ScoreRecord) error

	// WriteGuess, WriteSlip, and WriteTransit overwrite the corresponding
	// Q×K matrix, e.g. after a Train cycle.
	WriteGuess(ctx context.Context, m *matrix.Dense) error
	WriteSlip(ctx context.Context, m *matrix.Dense) error
	WriteTransit(ctx context.Context, m *matrix.Dense) error

	// WriteMasteryPrior overwrites the default mastery-odds vector.
	WriteMasteryPrior(ctx context.Context, prior []float64) error
}
