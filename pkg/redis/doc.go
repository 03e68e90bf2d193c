// Package redis connects to the Redis server that backs the shared user
// cache (see cache.Redis).
//
// Connect parses a redis:// URL, then pings with a bounded number of retries
// so a process that starts alongside Redis does not fail on the first
// refused connection. Healthcheck returns a ping probe for readiness checks.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Errors are sentinel values joined with the go-redis error via errors.Join.
package redis
