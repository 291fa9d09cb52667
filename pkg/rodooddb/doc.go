// Package rodooddb defines the public surface of the rodood-db connectivity
// layer: configuration value objects, the pluggable interfaces (logging,
// error classification, backoff, connectors), sentinel errors, and the exit
// code mapping used by the CLI.
//
// The package deliberately contains no connection logic of its own. Concrete
// implementations live under internal/ and are wired together by the CLI or
// by the embedding application.
package rodooddb
