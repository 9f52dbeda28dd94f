// Package engine provides the core types and the orchestrator for the
// OrgForge configuration automation engine.
//
// # Overview
//
// OrgForge drives administrative Setup surfaces of a target org through an
// authenticated browser session. A run has four phases:
//
//  1. Connect - launch a browser and inject the pre-obtained session
//     (front-door injection), verified against known post-login markers
//  2. Execute - dispatch each configuration operation, in a fixed category
//     order, to its kind-specific UI protocol
//  3. Aggregate - reduce the ordered operation outcomes into a BatchResult
//  4. Disconnect - release the browser unconditionally, exactly once
//
// # Core Domain Types
//
//   - Target: the pre-authenticated org identity (instance URL + access token)
//   - Operation: a closed tagged variant over the six configuration kinds
//   - Batch: an ordered document grouping operations plus the failure policy
//   - OperationResult / BatchResult: per-operation and reduced outcomes
//
// # Capability Interfaces
//
// The orchestrator never touches a concrete rendering engine. It drives the
// Connector / Session / Actor interfaces; pkg/browser implements them with
// go-rod. Tests substitute instrumented fakes.
//
// # Failure Policy
//
// With continueOnError=false the first hard failure aborts the batch and
// propagates; with continueOnError=true every operation is attempted exactly
// once and failures are only reported through the BatchResult. Applied
// operations are never rolled back. Soft errors (load-completion heuristics
// timing out) never fail an operation by themselves.
package engine
