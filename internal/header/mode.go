package header

import (
	"github.com/dshills/inlinechrome/internal/config"
	"github.com/dshills/inlinechrome/internal/docking"
	"github.com/dshills/inlinechrome/internal/geom"
)

// ResolveMode picks the toolbar placement.
//
// A forced location always wins. For auto, in order:
//
//  1. top if the space above the target exceeds toolbarHeight;
//  2. bottom if the document has more than toolbarHeight below the target;
//  3. bottom if the viewport bottom is above target.Bottom()+toolbarHeight,
//     otherwise top.
//
// toolbarHeight is the effective height, see EffectiveToolbarHeight.
func ResolveMode(loc config.Location, target geom.Rect, toolbarHeight, documentHeight float64, viewport geom.Rect) docking.Mode {
	switch loc {
	case config.LocationTop:
		return docking.ModeTop
	case config.LocationBottom:
		return docking.ModeBottom
	}

	if target.Y > toolbarHeight {
		return docking.ModeTop
	}
	if target.Bottom() < documentHeight-toolbarHeight {
		return docking.ModeBottom
	}
	if viewport.Bottom() < target.Bottom()+toolbarHeight {
		return docking.ModeBottom
	}
	return docking.ModeTop
}

// EffectiveToolbarHeight is the container height minus the overflow drawer
// row, which is only counted when the toolbar mode is split and the
// toolbar actually has a drawer row.
func EffectiveToolbarHeight(containerHeight, drawerHeight float64) float64 {
	return containerHeight - drawerHeight
}
