// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a bounded task Pool and a Workers
// aggregate that allows running and stopping multiple workers in a
// unified way.
package workers

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker's execution. Implementations are expected to spawn
// goroutines internally and return promptly. Stop releases the worker and
// blocks until everything it started has finished.
//
// Example implementation:
//
//	type MyWorker struct{ done chan struct{} }
//
//	func (w *MyWorker) Run()  { go w.loop() }
//	func (w *MyWorker) Stop() { close(w.done) }
type Worker interface {
	Run()
	Stop()
}
