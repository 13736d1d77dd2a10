package run

import "fmt"

//WithError runs fn and turns a panic inside it into an error, so that one faulty pass can't kill the process.
func WithError(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fromPanic(p)
		}
	}()

	return fn()
}

//AsyncWithError runs fn in a new goroutine; the buffered channel receives exactly one result.
func AsyncWithError(fn func() error) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- WithError(fn)
	}()

	return errCh
}

func fromPanic(p interface{}) error {
	if perr, ok := p.(error); ok {
		return fmt.Errorf("panic: %w", perr)
	}
	return fmt.Errorf("panic: %v", p)
}
