package utils

import "sync"

// Subprocesses runs functions on their own goroutines and waits for all of them.
type Subprocesses struct {
	wg sync.WaitGroup
}

func (s *Subprocesses) Go(f func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		f()
	}()
}

func (s *Subprocesses) Wait() {
	s.wg.Wait()
}
