package header

import (
	"github.com/dshills/inlinechrome/internal/config"
	"github.com/dshills/inlinechrome/internal/dom"
	"github.com/dshills/inlinechrome/internal/event"
	"github.com/dshills/inlinechrome/internal/geom"
)

// Stage results. Each stage of Update takes the previous stage's result,
// so the stages cannot be reordered or skipped by accident. A stage that
// does not apply still returns its result.

type maxWidthApplied struct{}

type measured struct {
	fullWidth float64
	ok        bool
}

type toolbarRefreshed struct {
	measured
}

type positioned struct{}

type docked struct{}

// isSticky reports whether docking applies. A fixed container never docks.
func isSticky(opts config.Options) bool {
	return opts.ToolbarSticky && !opts.UseFixedContainer()
}

// applyMaxWidth caps the float container at the configured width, or at
// the room between the target's left edge and the body's right edge.
func (h *Header) applyMaxWidth(opts config.Options) maxWidthApplied {
	if opts.UseFixedContainer() || h.refs.Float == nil {
		return maxWidthApplied{}
	}
	width := opts.MaxWidth
	if !opts.HasMaxWidth() && h.refs.Target != nil {
		body := h.doc.Body()
		margin := 0.0
		if v, ok := h.doc.Style(body, dom.PropMargin); ok {
			if px, ok := geom.ParsePx(v); ok {
				margin = px
			}
		}
		width = h.doc.OuterWidth(body) - h.doc.BoundingBox(h.refs.Target).X + margin
	}
	h.doc.SetStyle(h.refs.Float, dom.PropMaxWidth, geom.Px(width))
	return maxWidthApplied{}
}

// measure records the outer container's natural width for this pass only.
func (h *Header) measure(_ maxWidthApplied, opts config.Options) measured {
	if opts.UseFixedContainer() || h.refs.Outer == nil {
		return measured{}
	}
	return measured{fullWidth: measureNaturalWidth(h.doc, h.doc, h.refs.Outer), ok: true}
}

// refreshToolbar lets a split toolbar re-flow its drawer.
func (h *Header) refreshToolbar(m measured, opts config.Options) toolbarRefreshed {
	if opts.ToolbarMode.IsSplit() && h.refs.Toolbar != nil {
		h.refs.Toolbar.Refresh()
	}
	return toolbarRefreshed{m}
}

// reposition writes position, top, left and width on the outer container.
func (h *Header) reposition(t toolbarRefreshed, opts config.Options) positioned {
	if opts.UseFixedContainer() || h.refs.Outer == nil || h.refs.Float == nil || h.refs.Target == nil {
		return positioned{}
	}
	target := h.doc.BoundingBox(h.refs.Target)
	pos := ComputePosition(h.cell.IsPositionedAtTop(), target, h.doc.Height(h.refs.Float), h.drawerOffset(opts))
	dom.SetStyles(h.doc, h.refs.Outer,
		dom.PropPosition, "absolute",
		dom.PropLeft, geom.Px(float64(pos.Left)),
		dom.PropTop, geom.Px(float64(pos.Top)),
	)

	if !t.ok {
		return positioned{}
	}
	if w, ok := ComputeWidthOverride(target, h.doc.Viewport().Width, t.fullWidth, h.doc.Scroll().X); ok {
		h.doc.SetStyle(h.refs.Outer, dom.PropWidth, geom.Px(float64(geom.Round(w))))
	} else {
		h.doc.RemoveStyle(h.refs.Outer, dom.PropWidth)
	}
	return positioned{}
}

// refreshDocking lets docking re-evaluate, or start over when reset is set.
func (h *Header) refreshDocking(_ positioned, opts config.Options, reset bool) docked {
	if !isSticky(opts) || h.refs.Float == nil {
		return docked{}
	}
	if reset {
		h.docking.Reset(h.refs.Float)
	} else {
		h.docking.Refresh(h.refs.Float)
	}
	return docked{}
}

// repositionPopups tells anchored popups to follow.
func (h *Header) repositionPopups(_ docked) {
	h.bus.Broadcast(event.TopicRepositionPopups, eventSource)
}
