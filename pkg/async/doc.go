// Package async provides a small generic Future type for operations that
// complete exactly once.
//
// A Future is obtained from Async or Go, which run a function in its own
// goroutine, from Resolved for outcomes known up front, or from a Promise when
// the producer decides on its own when the result is ready. Consumers wait with
// Await, AwaitContext or AwaitWithTimeout, or poll with IsComplete.
//
// # Usage
//
//	future := async.Go(ctx, func(ctx context.Context) (string, error) {
//	    return fetch(ctx)
//	})
//
//	// do other work …
//	res, err := future.Await()
//
// A promise completes a future from the outside:
//
//	p := async.NewPromise[int]()
//	go func() { p.Resolve(42, nil) }()
//	v, _ := p.Future().Await()
//
// # Guarantees
//
// Completion is exactly-once: the first Resolve (or the return of the
// function passed to Async) wins and later attempts are ignored. The result
// and error are published before Done is closed, so every waiter observes the
// same values.
//
// # Error Handling
//
// The package does not wrap errors produced by the user callback. The only
// error it defines is ErrTimeout, returned by AwaitWithTimeout.
package async
