package config

import (
	"math"

	"go.uber.org/multierr"

	"github.com/dshills/inlinechrome/internal/logging"
)

// Location is the preferred toolbar placement relative to the target.
type Location string

// Toolbar locations.
const (
	LocationAuto   Location = "auto"
	LocationTop    Location = "top"
	LocationBottom Location = "bottom"
)

// Valid reports whether l is a known location.
func (l Location) Valid() bool {
	switch l {
	case LocationAuto, LocationTop, LocationBottom:
		return true
	}
	return false
}

// ToolbarMode is how overflowing toolbar items are presented.
type ToolbarMode string

// Toolbar modes. Floating and sliding move overflow into a drawer.
const (
	ToolbarFloating  ToolbarMode = "floating"
	ToolbarSliding   ToolbarMode = "sliding"
	ToolbarWrap      ToolbarMode = "wrap"
	ToolbarScrolling ToolbarMode = "scrolling"
)

// Valid reports whether m is a known mode.
func (m ToolbarMode) Valid() bool {
	switch m {
	case ToolbarFloating, ToolbarSliding, ToolbarWrap, ToolbarScrolling:
		return true
	}
	return false
}

// IsSplit reports whether overflow goes to a drawer row.
func (m ToolbarMode) IsSplit() bool {
	return m == ToolbarFloating || m == ToolbarSliding
}

// Direction is the text direction of a navigation host.
type Direction string

// Text directions.
const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == LTR || d == RTL
}

// Options is a resolved, read-only set of editor options.
type Options struct {
	FixedToolbarContainer string         `yaml:"fixed_toolbar_container"`
	ToolbarSticky         bool           `yaml:"toolbar_sticky"`
	ToolbarStickyOffset   float64        `yaml:"toolbar_sticky_offset"`
	ToolbarLocation       Location       `yaml:"toolbar_location"`
	ToolbarMode           ToolbarMode    `yaml:"toolbar_mode"`
	MaxWidth              float64        `yaml:"max_width"`
	Directionality        Direction      `yaml:"directionality"`
	Logging               logging.Config `yaml:"logging"`
}

// Default returns the built-in options.
func Default() Options {
	return Options{
		ToolbarSticky:   true,
		ToolbarLocation: LocationAuto,
		ToolbarMode:     ToolbarFloating,
		Directionality:  LTR,
		Logging:         logging.DefaultConfig(),
	}
}

// UseFixedContainer reports whether an external container positions the toolbar.
func (o Options) UseFixedContainer() bool {
	return o.FixedToolbarContainer != ""
}

// HasMaxWidth reports whether max_width overrides the derived width.
func (o Options) HasMaxWidth() bool {
	return o.MaxWidth > 0
}

// Validate checks every option and reports all problems at once.
func (o Options) Validate() error {
	var err error
	if !o.ToolbarLocation.Valid() {
		err = multierr.Append(err, &ValidationError{Field: "toolbar_location", Value: o.ToolbarLocation, Reason: "must be auto, top or bottom"})
	}
	if !o.ToolbarMode.Valid() {
		err = multierr.Append(err, &ValidationError{Field: "toolbar_mode", Value: o.ToolbarMode, Reason: "must be floating, sliding, wrap or scrolling"})
	}
	if !o.Directionality.Valid() {
		err = multierr.Append(err, &ValidationError{Field: "directionality", Value: o.Directionality, Reason: "must be ltr or rtl"})
	}
	if o.MaxWidth < 0 || math.IsNaN(o.MaxWidth) || math.IsInf(o.MaxWidth, 0) {
		err = multierr.Append(err, &ValidationError{Field: "max_width", Value: o.MaxWidth, Reason: "must be a finite, non-negative number"})
	}
	if o.ToolbarStickyOffset < 0 || math.IsNaN(o.ToolbarStickyOffset) {
		err = multierr.Append(err, &ValidationError{Field: "toolbar_sticky_offset", Value: o.ToolbarStickyOffset, Reason: "must be non-negative"})
	}
	if !logging.ValidLevel(o.Logging.Console.Level) {
		err = multierr.Append(err, &ValidationError{Field: "logging.console.level", Value: o.Logging.Console.Level, Reason: "must be none, normal or debug"})
	}
	if !logging.ValidLevel(o.Logging.File.Level) {
		err = multierr.Append(err, &ValidationError{Field: "logging.file.level", Value: o.Logging.File.Level, Reason: "must be none, normal or debug"})
	}
	return err
}
