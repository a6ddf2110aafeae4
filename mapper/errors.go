package mapper

import "fmt"

// ConfigurationError reports a mapper that cannot be built from its configuration
type ConfigurationError struct {
	ID     ID
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("mapper %v: %v", e.ID, e.Reason)
	}
	return fmt.Sprintf("mapper %v: %v: %v", e.ID, e.Reason, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func newConfigurationError(id ID, reason string, err error) *ConfigurationError {
	return &ConfigurationError{ID: id, Reason: reason, Err: err}
}
