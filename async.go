package shunt

import "github.com/shopspring/decimal"

// Executor schedules evaluation work submitted through EvaluateAsync,
// typically onto a worker pool.
type Executor interface {
	Execute(task func())
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(task func())

func (f ExecutorFunc) Execute(task func()) {
	f(task)
}

// GoExecutor runs every submitted task on its own goroutine.
type GoExecutor struct{}

func (GoExecutor) Execute(task func()) {
	go task()
}

// Future is the pending result of an asynchronous evaluation.
type Future struct {
	done chan struct{}
	val  decimal.Decimal
	err  error
}

// Result blocks until the evaluation finished and returns its outcome.
func (f *Future) Result() (decimal.Decimal, error) {
	<-f.done
	return f.val, f.err
}

// Done returns a channel that is closed once the evaluation finished.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// EvaluateAsync submits a synchronous Evaluate to the executor and returns
// a Future for the result. Submissions carry no ordering guarantee and
// cannot be cancelled; discarding the Future discards the result. The
// expression itself must not be used concurrently, so each in-flight
// evaluation needs its own Copy.
func (e *Expression) EvaluateAsync(exec Executor) *Future {
	f := &Future{done: make(chan struct{})}
	exec.Execute(func() {
		f.val, f.err = e.Evaluate()
		close(f.done)
	})
	return f
}
