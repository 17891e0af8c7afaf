package geometry

import "fmt"

// InvalidParameterError is returned for out-of-range or otherwise unusable sampling parameters.
type InvalidParameterError struct {
	Parameter string
	Message   string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter '%s': %s", e.Parameter, e.Message)
}
