package dashboard

import (
	"fmt"
	"strings"
)

type ResourceError struct {
	Resource string
	Err      error
}

func (e ResourceError) Error() string { return e.Resource + ": " + e.Err.Error() }
func (e ResourceError) Unwrap() error { return e.Err }

// AcquisitionError reports a joint acquisition in which at least one read failed.
type AcquisitionError struct {
	ID       string
	Failures []ResourceError
}

func (e *AcquisitionError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.Error()
	}
	return fmt.Sprintf("acquisition %s failed: %s", e.ID, strings.Join(parts, "; "))
}

func (e *AcquisitionError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// Resources lists the failed resource names in acquisition order.
func (e *AcquisitionError) Resources() []string {
	out := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		out[i] = f.Resource
	}
	return out
}
