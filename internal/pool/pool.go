// Package pool runs a batch of independent tasks across a fixed set of
// worker goroutines.
//
// Every task in a batch writes to its own destination path, so no
// ordering between tasks is provided or needed. Errors are collected
// per task and joined after the whole batch has finished: one failing
// task never suppresses or cancels its siblings.
package pool

import (
	"errors"
	"sync"
)

// Task is a single unit of batch work.
type Task func() error

// Run executes tasks on up to workers goroutines and blocks until all
// of them have finished. The returned error joins every task error in
// an unspecified order; it is nil when all tasks succeeded.
func Run(workers int, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	jobs := make(chan Task, len(tasks))
	for _, task := range tasks {
		jobs <- task
	}
	close(jobs)

	errs := make(chan error, len(tasks))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for task := range jobs {
				if err := task(); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	var collected []error
	for err := range errs {
		collected = append(collected, err)
	}
	return errors.Join(collected...)
}
