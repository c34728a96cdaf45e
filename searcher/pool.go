package searcher

import "sync"

// Pool runs tasks on a fixed set of goroutines. One pool is shared by every
// search engine of a training run.
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

func NewPool(goroutines int) *Pool {
	if goroutines <= 0 {
		panic("pool needs at least one goroutine")
	}
	p := &Pool{tasks: make(chan func(), goroutines)}
	for i := 0; i < goroutines; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for task := range p.tasks {
				task()
			}
		}()
	}
	return p
}

// Submit blocks until a worker slot is free. It must not be called after Close.
func (p *Pool) Submit(task func()) {
	p.tasks <- task
}

// Close waits for queued tasks to finish and stops the workers.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.tasks)
		p.wg.Wait()
	})
}
