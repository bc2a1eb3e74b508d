// Package workers runs batches of independent jobs with bounded
// concurrency. The CLI uses it for multi-file uploads and downloads; every
// job is a separate vault call.
package workers

import "context"

// Worker is a single unit of work. Run must return when ctx is cancelled.
//
// Example implementation:
//
//	type uploadJob struct{ path string }
//
//	func (j *uploadJob) Run(ctx context.Context) error {
//	    // read the file and upload it
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a function to [Worker].
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error { return f(ctx) }
