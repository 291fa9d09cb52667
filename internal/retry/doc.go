// Package retry implements bounded retry for database connectivity
// operations.
//
// Failures are placed into three kinds by an ErrorClassifier: transient
// failures (connection drops, resource exhaustion, authentication timeouts)
// are retried; permanent failures (bad credentials, missing database) stop
// the loop immediately; unknown failures are treated as transient so a
// misclassified hiccup does not flip a health probe to red.
//
// Classification inspects structured PostgreSQL error codes and network
// error types first. Message-text matching exists only as a last-resort
// fallback for drivers and proxies that surface plain-text errors.
//
// # Example
//
//	classifier := retry.NewPostgresClassifier()
//	policy := retry.NewFixedBackoff(3, 2*time.Second)
//	exec := retry.NewExecutor(classifier, policy)
//
//	err := exec.Execute(ctx, func(ctx context.Context) error {
//	    return pool.Ping(ctx)
//	})
//
// The wait between attempts suspends only the calling goroutine and is
// abortable through the context. Tests inject a fake sleeper with
// WithSleep to avoid real delays.
package retry
