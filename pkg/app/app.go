// Package app holds the contract between cmd/* binaries and the processes they
// start, so a binary only parses flags and config before handing over.
package app

// Runner is a long-running process. Run blocks until the process stops and
// reports why it stopped.
type Runner interface {
	Run() error
}
