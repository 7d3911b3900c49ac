package gate

import (
	"fmt"
	"time"
)

const (
	DefaultMinScanInterval   = 5 * time.Minute
	DefaultMinDistanceMeters = 10
	DefaultMaxScansPerDay    = 100
)

// Policy holds the tunable anti-cheat limits
type Policy struct {
	MinScanInterval   time.Duration
	MinDistanceMeters float64
	MaxScansPerDay    int
	// Location decides where the calendar day boundary falls. Nil keeps the
	// location of the evaluated instant.
	Location *time.Location
}

// DefaultPolicy returns the limits used when nothing is configured
func DefaultPolicy() Policy {
	return Policy{
		MinScanInterval:   DefaultMinScanInterval,
		MinDistanceMeters: DefaultMinDistanceMeters,
		MaxScansPerDay:    DefaultMaxScansPerDay,
		Location:          time.Local,
	}
}

// Validate checks the policy for nonsensical values
func (p Policy) Validate() error {
	if p.MinScanInterval < 0 {
		return fmt.Errorf("min scan interval must be non-negative, got %v", p.MinScanInterval)
	}
	if p.MinDistanceMeters < 0 {
		return fmt.Errorf("min distance must be non-negative, got %v", p.MinDistanceMeters)
	}
	if p.MaxScansPerDay < 1 {
		return fmt.Errorf("max scans per day must be at least 1, got %d", p.MaxScansPerDay)
	}
	return nil
}
