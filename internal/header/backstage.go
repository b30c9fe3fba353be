package header

import "github.com/dshills/inlinechrome/internal/docking"

// ModeCell holds the header's docking mode. Components that open relative
// to the toolbar read it through Header.IsPositionedAtTop.
type ModeCell struct {
	mode docking.Mode
}

// NewModeCell creates a cell holding mode. Anything other than bottom
// is stored as top.
func NewModeCell(mode docking.Mode) *ModeCell {
	c := &ModeCell{}
	c.Set(mode)
	return c
}

// Get returns the current mode.
func (c *ModeCell) Get() docking.Mode { return c.mode }

// Set stores mode, normalised to top or bottom.
func (c *ModeCell) Set(mode docking.Mode) {
	if mode == docking.ModeBottom {
		c.mode = docking.ModeBottom
		return
	}
	c.mode = docking.ModeTop
}

// IsPositionedAtTop reports whether the toolbar sits above the target.
func (c *ModeCell) IsPositionedAtTop() bool {
	return c.mode != docking.ModeBottom
}
