package mutagen

import (
	"log"
	"sync"
)

// Preloader runs a generation closure on a dedicated goroutine and buffers
// completed values in a bounded channel, so an interactive consumer never
// waits on an expensive generate. The generator closure must be self
// contained: it owns its randomness source and retains no state between
// calls.
type Preloader[T any] struct {
	results chan T
	quit    chan struct{}
	def     T

	closeOnce sync.Once
	done      sync.WaitGroup
}

// NewPreloader starts the background generator with a buffer of poolSize
// pending values. def is returned by NextOrDefault when the buffer is empty.
func NewPreloader[T any](poolSize int, generate func() T, def T) *Preloader[T] {
	p := &Preloader[T]{
		results: make(chan T, poolSize),
		quit:    make(chan struct{}),
		def:     def,
	}

	p.done.Add(1)
	go func() {
		defer p.done.Done()
		for {
			v := generate()
			select {
			case p.results <- v:
			case <-p.quit:
				return
			}
		}
	}()

	return p
}

// Next blocks until a generated value is available.
func (p *Preloader[T]) Next() T {
	return <-p.results
}

// NextOrDefault returns a generated value if one is ready, otherwise the
// configured default. It never blocks.
func (p *Preloader[T]) NextOrDefault() T {
	select {
	case v := <-p.results:
		return v
	default:
		return p.def
	}
}

// Close stops the generator goroutine, drains the buffer and waits for the
// goroutine to exit. Safe to call more than once.
func (p *Preloader[T]) Close() {
	p.closeOnce.Do(func() {
		log.Printf("preloader: shutting down")
		close(p.quit)
		for {
			select {
			case <-p.results:
			default:
				p.done.Wait()
				return
			}
		}
	})
}
