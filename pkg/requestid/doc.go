// Package requestid carries a correlation identifier through outgoing calls.
//
// Every request the client sends to the remote service gets an "X-Request-ID"
// header. If the caller already put an id into the context with WithContext,
// that id is reused so all requests of one lookup share it; otherwise a UUIDv4
// is generated per request.
//
// # Usage
//
//	ctx, id := requestid.Ensure(ctx)
//	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
//	requestid.Apply(req) // sets X-Request-ID to id
//
// # Logger integration
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	log.InfoContext(ctx, "resolving user") // includes request_id
//
// Invalid ids (empty, too long, or with characters outside [a-zA-Z0-9_-]) are
// replaced with a fresh UUID rather than reported as errors.
package requestid
