package shared

import (
	"fmt"
	"io"
)

const (
	// LogPrefix prefixes service log records
	LogPrefix = "jmapper"
	// MetricURI serves registry metrics
	MetricURI = "/v1/api/metric/"
)

// CloseWithErrorHandling closes the closer and handles the error
func CloseWithErrorHandling(c io.Closer, err *error) {
	if c == nil {
		return
	}
	if cerr := c.Close(); cerr != nil {
		if err != nil && *err != nil {
			*err = fmt.Errorf("%w; close error: %v", *err, cerr)
		} else {
			*err = cerr
		}
	}
}
