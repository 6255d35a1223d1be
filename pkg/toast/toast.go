package toast

import (
	"context"
	"time"
)

// Variant is the semantic category of a toast. It affects presentation and
// announcement urgency, never the lifecycle.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantInfo    Variant = "info"
	VariantWarning Variant = "warning"
	VariantError   Variant = "error"
)

// ParseVariant maps s to a known variant. Unknown or empty input yields VariantDefault.
func ParseVariant(s string) Variant {
	v := Variant(s)
	if v.Valid() {
		return v
	}
	return VariantDefault
}

func (v Variant) Valid() bool {
	switch v {
	case VariantDefault, VariantSuccess, VariantInfo, VariantWarning, VariantError:
		return true
	}
	return false
}

// Role is the ARIA role a renderer should give the toast.
func (v Variant) Role() string {
	if v == VariantError {
		return "alert"
	}
	return "status"
}

// LiveMode is the aria-live politeness for the toast.
func (v Variant) LiveMode() string {
	if v == VariantError {
		return "assertive"
	}
	return "polite"
}

// Action is an optional button on a toast. Activating it runs OnClick and
// dismisses the toast; the dismissal happens even if OnClick fails.
type Action struct {
	Label   string
	OnClick func(ctx context.Context) error
}

// Toast is the public value of a live notification.
type Toast struct {
	ID          string
	Title       string
	Description string
	Variant     Variant
	// Duration until automatic expiry. Zero means the toast persists until dismissed.
	Duration  time.Duration
	Action    *Action
	CreatedAt time.Time
}

// Persistent reports whether the toast never expires on its own.
func (t Toast) Persistent() bool {
	return t.Duration <= 0
}

// Options are the recognized Publish parameters.
type Options struct {
	// ID replaces the live toast with the same id in place. Empty generates one.
	ID          string
	Title       string
	Description string
	Variant     Variant
	// Duration nil uses the engine default. Zero or negative persists.
	Duration *time.Duration
	Action   *Action
}

// Duration returns a pointer to d for use in Options.
func Duration(d time.Duration) *time.Duration {
	return &d
}

// Persist is shorthand for a toast that never expires on its own.
func Persist() *time.Duration {
	return Duration(0)
}

// normalize applies defaults and clamps. It never fails.
func (o Options) normalize(defaultDuration time.Duration) Toast {
	d := defaultDuration
	if o.Duration != nil {
		d = *o.Duration
	}
	return Toast{
		ID:          o.ID,
		Title:       o.Title,
		Description: o.Description,
		Variant:     ParseVariant(string(o.Variant)),
		Duration:    max(d, 0),
		Action:      o.Action,
	}
}
