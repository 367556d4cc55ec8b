// Package parallel contains bounded concurrency helpers.
package parallel

import "sync"

// ForEach calls body for every i in [0, length) using at most limit
// goroutines at a time, and returns once every call returned.
func ForEach(length, limit int, body func(i int)) {
	if limit <= 0 {
		limit = 1
	}
	if length <= 0 {
		return
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	wg.Add(length)

	for i := 0; i < length; i++ {
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			body(i)
		}(i)
	}

	wg.Wait()
}

// FirstError runs check for every i in [0, length) like ForEach and returns
// the error of the lowest failing index, or nil.
func FirstError(length, limit int, check func(i int) error) error {
	errs := make([]error, length)
	ForEach(length, limit, func(i int) {
		errs[i] = check(i)
	})
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
