package shared

import (
	"sync"

	"github.com/mongodb/grip"
)

// Errors collects errors from concurrent workers
type Errors struct {
	Errors []error
	mux    sync.Mutex
}

func (e *Errors) Add(err error) {
	if err == nil {
		return
	}
	e.mux.Lock()
	defer e.mux.Unlock()
	e.Errors = append(e.Errors, err)
}

func (e *Errors) First() error {
	e.mux.Lock()
	defer e.mux.Unlock()
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0]
}

// Resolve returns all collected errors as one, or nil
func (e *Errors) Resolve() error {
	e.mux.Lock()
	defer e.mux.Unlock()
	catcher := grip.NewBasicCatcher()
	for _, err := range e.Errors {
		catcher.Add(err)
	}
	return catcher.Resolve()
}
