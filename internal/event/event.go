// Package event defines the normalized space-weather event record shared
// by the fetch, correlation, summary and presentation layers.
package event

import "time"

// Type identifies the upstream event class. The set is closed.
type Type string

const (
	TypeFlare Type = "FLR"
	TypeCME   Type = "CME"
	TypeStorm Type = "GST"
)

// Event is the uniform record produced by normalization. Instances are
// never mutated after construction.
type Event struct {
	ID    string    `json:"id"`
	Type  Type      `json:"type"`
	Start time.Time `json:"start"`
	// End is only ever set for flares with a recorded end time.
	End *time.Time `json:"end,omitempty"`
	// Intensity is the type-specific descriptive label: flare class
	// ("X1.5"), CME analysis ("S (800 km/s)") or peak Kp ("Kp 7").
	Intensity string `json:"intensity"`
	// Magnitude is the numeric reading parsed from Intensity. Only
	// meaningful when HasMagnitude is true.
	Magnitude    float64 `json:"magnitude"`
	HasMagnitude bool    `json:"has_magnitude"`
	// Links holds upstream-declared activity ids of related events, in
	// upstream order. Dangling and duplicate ids are allowed.
	Links []string `json:"links,omitempty"`
}

// Downstream reports whether target is a causally downstream type for an
// event of type t. Flares propagate to CMEs and storms, CMEs to storms,
// storms are terminal.
func Downstream(t, target Type) bool {
	switch t {
	case TypeFlare:
		return target == TypeCME || target == TypeStorm
	case TypeCME:
		return target == TypeStorm
	}
	return false
}
