package tools

import (
	"context"
	"log"
)

// JobFunc defines a function executed asynchronously.
type JobFunc func(ctx context.Context) error

// Dispatch runs the job in a separate goroutine, fire-and-forget. Failures
// are logged under the job name and otherwise dropped.
func Dispatch(ctx context.Context, name string, fn JobFunc) {
	go func() {
		if err := fn(ctx); err != nil {
			log.Printf("job %s failed: %v", name, err)
		}
	}()
}
