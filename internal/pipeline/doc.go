// Package pipeline provides a framework for executing daily run steps
// in sequence.
//
// The pipeline pattern is used to process one announcement day through
// multiple stages: retrieval, deduplication, summarization, grouping,
// storage, and rendering. Each stage is implemented as a Step that
// receives the current run state and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running runs
// 4. It enables potential parallelization of independent steps in the future
//
// The pipeline supports both single-day runs and multi-day backfill
// with concurrency control using errgroup.
package pipeline
