// Package tasks implements per-user task CRUD.
//
// All access goes through a ScopedStore obtained with Store.For(userID), so
// every platform query carries the owner condition by construction. A task
// that exists but belongs to someone else and a task that does not exist
// both surface as ErrNotFound; the HTTP layer maps both to 404.
package tasks
