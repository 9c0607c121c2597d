// Package queue implements the job queue a generation run drains, along with
// the [Progress] reporting consumed by the user interface.
package queue
