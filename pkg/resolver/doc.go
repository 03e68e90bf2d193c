// Package resolver turns identity/secret pairs into user information
// records, memoizing every record it manages to fetch.
//
// A lookup follows a fixed sequence on top of a SessionClient:
//
//	cache hit ─────────────────────────────────────────────▶ record
//	cache miss ─▶ login ─✗────────────────────────────────▶ nil
//	                     └✓▶ fetch ─▶ logout (always) ─▶ record (cached) | nil
//
// Each step waits for the previous one, because each depends on the session
// the previous one left behind. Logout is attempted whether or not the fetch
// produced a record, and its failure is only logged and counted: the caller's
// result does not depend on it.
//
// Records are cached per identity and never expire. A later call with the
// same identity returns the cached record without checking the secret it was
// given. A failed lookup caches nothing, so the next call retries.
//
// # Usage
//
//	client, _ := authsession.New(cfg)
//	r := resolver.New(client,
//	    resolver.WithLogger(log),
//	    resolver.WithMetrics(resolver.NewMetrics(prometheus.DefaultRegisterer)),
//	)
//
//	info, err := r.ResolveUser(ctx, "alice", "s3cret").Await()
//	if info == nil {
//	    // err wraps ErrNotResolved with the cause, for diagnostics only
//	}
//	r.Wait() // on shutdown: let pending logouts finish
//
// # Concurrency
//
// The underlying client holds a single session, so the resolver runs one
// flow at a time. The next flow starts only after the previous logout has
// completed. Concurrent lookups with the same identity and secret are
// collapsed into one flow. A caller whose context ends stops waiting, but the
// flow it started still runs to its logout.
package resolver
