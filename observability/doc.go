// Package observability defines the logging and metrics hooks of the
// go-tba client.
//
// # Logger
//
// Logger takes a message and key-value fields at four levels. The client only
// logs from its HTTP middleware (request start and finish, retries, rate
// limit waits, cache hits); API errors are returned, never logged.
//
//	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	client, err := tba.NewWithConfig(&tba.ClientConfig{
//		AuthKey: key,
//		Logger:  observability.NewZerolog(zl),
//	})
//
// # MetricsRecorder
//
// MetricsRecorder receives request counts and durations, retry attempts,
// rate limit waits, response cache hits and misses, and error occurrences.
// Recorded paths have team, event and match keys replaced by placeholders.
//
// # Default Behavior
//
// When no logger or recorder is configured the client uses no-op
// implementations.
package observability
