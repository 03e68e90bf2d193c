package async

// Promise is the write side of a Future.
// It lets the producer complete the future from any goroutine, at any point
// of its own work, instead of when a function returns.
type Promise[U any] struct {
	future *Future[U]
}

// NewPromise creates a pending promise.
func NewPromise[U any]() *Promise[U] {
	return &Promise[U]{future: newFuture[U]()}
}

// Future returns the read side of the promise.
func (p *Promise[U]) Future() *Future[U] {
	return p.future
}

// Resolve completes the future. Only the first call has an effect;
// it returns false if the promise was already resolved.
func (p *Promise[U]) Resolve(res U, err error) bool {
	return p.future.complete(res, err)
}
