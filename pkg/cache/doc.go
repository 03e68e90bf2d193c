// Package cache provides key/value caches for resolved user records.
//
// Two implementations share one method set (Get, Set, Delete):
//
//   - Memory keeps values in a mutex-protected map inside the process.
//   - Redis stores JSON-encoded values in Redis under a key prefix, which
//     lets several processes reuse each other's lookups.
//
// Neither implementation evicts or expires entries. Records stay cached
// until they are deleted explicitly, and memory or Redis usage grows with
// the number of distinct keys.
//
// # Usage
//
//	users := cache.NewMemory[authsession.UserInfo]()
//	_ = users.Set(ctx, "alice", info)
//	info, ok, _ := users.Get(ctx, "alice")
//
//	shared := cache.NewRedis[authsession.UserInfo](redisClient, cache.WithPrefix("intranet:"))
//
// # Errors
//
// Memory never fails. Redis wraps go-redis failures in ErrBackend, values
// that cannot be marshaled in ErrEncode, and undecodable stored data in
// ErrCorruptEntry, all joined with the underlying error via errors.Join.
package cache
