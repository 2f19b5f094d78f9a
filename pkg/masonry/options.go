package masonry

import (
	"time"

	"github.com/matzehuels/masonry/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultReferenceColumnWidth is the container width per column used to
	// derive the column count.
	DefaultReferenceColumnWidth = 300.0

	// DefaultResizeDebounce is the quiet period that coalesces resize bursts.
	DefaultResizeDebounce = 60 * time.Millisecond

	// DefaultPollInterval is the background re-measure interval.
	DefaultPollInterval = 100 * time.Millisecond
)

// =============================================================================
// Options
// =============================================================================

// Options contains the recognized layout configuration. Zero fields take
// their defaults.
type Options struct {
	ReferenceColumnWidth float64       `json:"reference_column_width,omitempty"`
	ResizeDebounce       time.Duration `json:"resize_debounce,omitempty"`
	PollInterval         time.Duration `json:"poll_interval,omitempty"`
}

// DefaultOptions returns Options with every field set to its default.
func DefaultOptions() Options {
	o := Options{}
	o.SetDefaults()
	return o
}

// SetDefaults fills zero fields with their defaults.
func (o *Options) SetDefaults() {
	if o.ReferenceColumnWidth == 0 {
		o.ReferenceColumnWidth = DefaultReferenceColumnWidth
	}
	if o.ResizeDebounce == 0 {
		o.ResizeDebounce = DefaultResizeDebounce
	}
	if o.PollInterval == 0 {
		o.PollInterval = DefaultPollInterval
	}
}

// Validate checks that every field is usable. It does not apply defaults.
func (o Options) Validate() error {
	if o.ReferenceColumnWidth < 0 || o.ReferenceColumnWidth != o.ReferenceColumnWidth {
		return errors.New(errors.ErrCodeInvalidConfig, "reference column width must be positive, got %v", o.ReferenceColumnWidth)
	}
	if o.ResizeDebounce < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "resize debounce must not be negative, got %v", o.ResizeDebounce)
	}
	if o.PollInterval < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "poll interval must not be negative, got %v", o.PollInterval)
	}
	return nil
}

// ValidateAndSetDefaults validates o and then fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.Validate(); err != nil {
		return err
	}
	o.SetDefaults()
	return nil
}
