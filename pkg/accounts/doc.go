// Package accounts exposes the public signup and login endpoints. Both
// delegate entirely to the identity provider; no credential ever lives here.
package accounts
