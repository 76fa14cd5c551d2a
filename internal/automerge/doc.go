// Package automerge merges open pull requests whose status checks passed.
//
// One run is a single synchronous pass: the open pull requests of the
// repository are retrieved in ascending number order and pulled through a
// chain of lazy, order-preserving filter stages:
//
//  1. an optional jq filter query,
//
//  2. the required labels are present or the author is an allowed bot,
//
//  3. the pull request is mergeable,
//
//  4. no check failed, is pending or was cancelled, and at least a
//     configured number of checks passed.
//
// Status checks are only fetched in the last stage, for pull requests that
// already passed the cheaper filters.
//
// The coordinator consumes the surviving pull requests in order. Per base
// branch, the first one is approved and merged, every following one is
// rebased onto the fresh base branch history instead, so that a later run
// finds it mergeable again. At most one pull request is merged per base
// branch and run.
//
// Any failure aborts the run, nothing is retried or rolled back. A rerun
// rebuilds all state from GitHub.
package automerge
