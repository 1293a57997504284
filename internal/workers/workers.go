package workers

// Workers runs a fixed set of background workers as one unit.
type Workers struct {
	workers []Worker
}

// NewWorkers groups ws into a single [Workers] aggregate.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// Run starts every worker in registration order.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop stops the workers in reverse registration order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
