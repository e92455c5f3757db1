// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package fault turns handler failures into bounded, structured records.
//
// [Normalizer] walks the Unwrap chain of an error and builds a
// [models.ErrorRecord] per causal layer, with the source location and trace
// taken from stacks attached by github.com/cockroachdb/errors. Wrapper layers
// that only add a stack are folded into the error they wrap. Chains longer
// than the configured depth are cut and the last kept record is marked as
// truncated.
//
// [Reporter] logs a normalized failure, publishes it to the fault-reporting
// collaborator and, in debug mode, echoes it to the console. [Envelope]
// shapes the client payload for debug and production modes.
package fault
