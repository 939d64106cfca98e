// Package pkgroutine contains helpers for running background goroutines safely.
//
// The Manager type limits concurrency, collects returned errors, and logs
// panics with the task name so that background work (such as import event
// consumers) does not crash the process silently.
package pkgroutine
