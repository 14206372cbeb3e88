package parallel

import (
	"context"
	"sync"

	"github.com/databricks/databricks-sdk-go/logger"
)

// Tasks runs mapper over tasks on a fixed number of workers and returns the
// results in task order. The first error cancels the remaining work and is
// returned.
func Tasks[T, R any](ctx context.Context, workers int, tasks []T, mapper func(context.Context, T) (R, error)) ([]R, error) {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p := &pool[T, R]{
		mapper:  mapper,
		tasks:   tasks,
		work:    make(chan int),
		results: make([]R, len(tasks)),
		cancel:  cancel,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
	p.dispatch(ctx)
	p.wg.Wait()
	if p.lastErr != nil {
		return nil, p.lastErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.results, nil
}

// Fold runs mapper like Tasks and then folds the results into acc on the
// calling goroutine, in task order.
func Fold[T, R, A any](ctx context.Context, workers int, tasks []T, mapper func(context.Context, T) (R, error), acc A, fold func(A, R) (A, error)) (A, error) {
	results, err := Tasks(ctx, workers, tasks, mapper)
	if err != nil {
		return acc, err
	}
	for _, r := range results {
		acc, err = fold(acc, r)
		if err != nil {
			return acc, err
		}
	}
	return acc, nil
}

type pool[T, R any] struct {
	mapper  func(context.Context, T) (R, error)
	tasks   []T
	work    chan int
	results []R
	cancel  func()
	lastErr error
	mu      sync.Mutex
	wg      sync.WaitGroup
}

func (p *pool[T, R]) dispatch(ctx context.Context) {
	defer close(p.work)
	for i := range p.tasks {
		select {
		case <-ctx.Done():
			return
		case p.work <- i:
		}
	}
}

func (p *pool[T, R]) fail(ctx context.Context, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastErr != nil {
		return
	}
	logger.Errorf(ctx, "task failed: %s", err)
	p.lastErr = err
	p.cancel()
}

func (p *pool[T, R]) worker(ctx context.Context) {
	defer p.wg.Done()
	logger.Debugf(ctx, "Starting worker")
	for i := range p.work {
		if ctx.Err() != nil {
			continue
		}
		result, err := p.mapper(ctx, p.tasks[i])
		if err != nil {
			p.fail(ctx, err)
			continue
		}
		// every index is handed out once, so writes never overlap
		p.results[i] = result
	}
}
