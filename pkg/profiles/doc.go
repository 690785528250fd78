// Package profiles manages per-identity profile records and avatar uploads.
//
// Profiles are provisioned lazily: every handler calls EnsureProfile before
// touching the row, and concurrent first requests are resolved by the
// platform's primary-key constraint rather than locking here.
//
// Avatar URLs returned to clients always carry a cache-busting query
// parameter appended at read time, never persisted.
package profiles
