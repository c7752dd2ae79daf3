// SPDX-License-Identifier: MIT
//
// Package memstore is an in-memory reference implementation of
// engine.Store, suitable for tests, benchmarks, and the cmd/alosi-bench
// CLI. It is not persistent: everything lives in process memory behind a
// single mutex.
package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/harvard-vpal/alosi-go/bkterr"
	"github.com/harvard-vpal/alosi-go/engine"
	"github.com/harvard-vpal/alosi-go/estimator"
	"github.com/harvard-vpal/alosi-go/matrix"
	"github.com/harvard-vpal/alosi-go/recommend"
	"github.com/harvard-vpal/alosi-go/relevance"
)

var _ engine.Store = (*Store)(nil)

// Store is an in-memory engine.Store. The zero value is not usable; build
// one with New.
type Store struct {
	mu sync.Mutex

	guess, slip, transit *matrix.Dense
	difficulty           []float64
	prereqs              *matrix.Dense
	masteryPrior         []float64

	weights    recommend.Weights
	thresholds recommend.Thresholds

	mastery      map[int64][]float64
	lastActivity map[int64]int64

	records []estimator.ScoreRecord
	seenIDs map[string]bool
}

// Seed bundles the initial parameter state a Store is built from.
type Seed struct {
	Guess, Slip, Transit *matrix.Dense
	Difficulty           []float64
	Prereqs              *matrix.Dense
	MasteryPrior         []float64
	Weights              recommend.Weights
	Thresholds           recommend.Thresholds
}

// New builds a Store from seed. All matrices are used by reference — the
// caller should not mutate them afterward.
func New(seed Seed) *Store {
	return &Store{
		guess:        seed.Guess,
		slip:         seed.Slip,
		transit:      seed.Transit,
		difficulty:   seed.Difficulty,
		prereqs:      seed.Prereqs,
		masteryPrior: seed.MasteryPrior,
		weights:      seed.Weights,
		thresholds:   seed.Thresholds,
		mastery:      make(map[int64][]float64),
		lastActivity: make(map[int64]int64),
		seenIDs:      make(map[string]bool),
	}
}

func (s *Store) Guess(ctx context.Context) (*matrix.Dense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guess.Clone().(*matrix.Dense), nil
}

func (s *Store) Slip(ctx context.Context) (*matrix.Dense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slip.Clone().(*matrix.Dense), nil
}

func (s *Store) Transit(ctx context.Context) (*matrix.Dense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transit.Clone().(*matrix.Dense), nil
}

func (s *Store) Difficulty(ctx context.Context) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.difficulty, nil
}

func (s *Store) Prereqs(ctx context.Context) (*matrix.Dense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prereqs.Clone().(*matrix.Dense), nil
}

// GuessSnapshot returns a defensive copy of the current guess matrix,
// independent of WriteGuess calls that race with the caller. Used by
// diagnostics that need a stable "before" view alongside a later Train
// call's "after" result.
func (s *Store) GuessSnapshot() *matrix.Dense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guess.Clone().(*matrix.Dense)
}

func (s *Store) MasteryPrior(ctx context.Context) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.masteryPrior, nil
}

func (s *Store) Mastery(ctx context.Context, learner int64) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.mastery[learner]; ok {
		return m, nil
	}
	return s.masteryPrior, nil
}

// LastAttemptedRelevance returns nil if learner has no recorded attempts.
func (s *Store) LastAttemptedRelevance(ctx context.Context, learner int64) ([]float64, error) {
	s.mu.Lock()
	activity, ok := s.lastActivity[learner]
	guess, slip := s.guess, s.slip
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}

	rel, err := relevance.FromOdds(guess, slip)
	if err != nil {
		return nil, err
	}
	return rel.Row(int(activity))
}

func (s *Store) Scores(ctx context.Context) ([]estimator.ScoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]estimator.ScoreRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *Store) Weights(ctx context.Context) (recommend.Weights, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.weights, nil
}

func (s *Store) Thresholds(ctx context.Context) (recommend.Thresholds, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thresholds, nil
}

func (s *Store) WriteMastery(ctx context.Context, learner int64, mastery []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]float64, len(mastery))
	copy(cp, mastery)
	s.mastery[learner] = cp
	return nil
}

// AppendScore assigns rec an ID if it lacks one, and silently no-ops if an
// ID it already carries has been seen before — the idempotency guard
// against at-least-once delivery.
func (s *Store) AppendScore(ctx context.Context, rec estimator.ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	} else if s.seenIDs[rec.ID] {
		return nil
	}
	s.seenIDs[rec.ID] = true
	s.records = append(s.records, rec)
	s.lastActivity[rec.Learner] = rec.Activity
	return nil
}

func (s *Store) WriteGuess(ctx context.Context, m *matrix.Dense) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return bkterr.NewStorageError("WriteGuess", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guess = m
	return nil
}

func (s *Store) WriteSlip(ctx context.Context, m *matrix.Dense) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return bkterr.NewStorageError("WriteSlip", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slip = m
	return nil
}

func (s *Store) WriteTransit(ctx context.Context, m *matrix.Dense) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return bkterr.NewStorageError("WriteTransit", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transit = m
	return nil
}

func (s *Store) WriteMasteryPrior(ctx context.Context, prior []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]float64, len(prior))
	copy(cp, prior)
	s.masteryPrior = cp
	return nil
}
