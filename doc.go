// Package alosi is an adaptive-learning recommendation engine built around
// Bayesian Knowledge Tracing (BKT): per-learner mastery odds over knowledge
// components (KCs), a four-part weighted activity scorer, and batch
// parameter re-estimation from observed score records.
//
// Everything here operates on odds rather than probabilities internally —
// see package numeric — because odds compose multiplicatively under the BKT
// update and stay well-behaved near 0 and 1 where probabilities don't.
//
// The engine is organized into focused packages, mirroring how its ancestor
// splits a dense-matrix toolkit into narrow, single-purpose pieces:
//
//	bkterr/     — typed error kinds (ValidationError, NumericDomainError, StorageError)
//	matrix/     — the dense Q×K / K×K numeric substrate
//	numeric/    — odds/probability conversion and NaN/Inf sanitation
//	relevance/  — per-(activity,KC) relevance kernel
//	mastery/    — one Bayesian update of a learner's mastery-odds vector
//	recommend/  — the P/R/C/D weighted activity scorer
//	inference/  — per-learner empirical knowledge inference (the z-matrix algorithm)
//	estimator/  — batch parameter re-estimation ("training")
//	engine/     — the Store contract and the Engine facade (Recommend/UpdateFromScore/Train)
//	memstore/   — an in-memory reference Store implementation
//	cmd/alosi-bench/ — a CLI exercising the facade end to end
//
// This root package re-exports the engine facade so callers only need one
// import path for the common case; reach into the subpackages directly for
// anything more specialized (custom scorers, a different Store backend).
package alosi
