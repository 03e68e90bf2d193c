// Package logger builds *slog.Logger instances with functional options and
// provides attribute helpers so log keys stay consistent across packages.
//
// New picks slog's JSON or text handler from the configured Format, applies
// static attributes, and wraps the result in a ContextHandler that runs every
// registered ContextExtractor at log time. That is how request ids stored in
// a context end up on each record.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "authclient"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
//	log.WarnContext(ctx, "logout failed",
//	    logger.Identity(identity),
//	    logger.Error(err),
//	)
//
// # Options
//
//   - WithEnvironment: production/staging use JSON at info, everything else text at debug.
//   - WithFormat, WithLevel, WithOutput: override individual settings.
//   - WithAttr: attach static attributes.
//   - WithContextExtractors: inject attributes from context.
//
// Attribute helpers such as Error and RequestID return an empty slog.Attr for
// zero input, and slog drops empty attributes, so callers need no nil checks.
//
// Nop returns a logger that discards output; packages use it as their default
// so nothing is printed unless the caller supplies a logger.
package logger
