package core

import "fmt"

// ConfigError reports a construction parameter outside its documented
// range. Constructors return it instead of clamping, so a bad value is
// loud at the boundary rather than silently reshaped downstream.
type ConfigError struct {
	Param string
	Value any
	Want  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("drifting-dots: %s is %v, want %s", e.Param, e.Value, e.Want)
}
