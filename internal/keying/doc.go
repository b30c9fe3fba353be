// Package keying turns directional key presses into focus movement inside
// composite widgets such as toolbars and menus.
//
// A Resolver builds Handlers for the four directions. West and East take a
// pair of movement functions and pick one according to the host's text
// direction, so that the left arrow moves toward the visual left in both
// LTR and RTL layouts. North and South use their movement function as is.
//
// A Handler finds the focused item through a FocusManager, asks the
// movement function for the next item and commits it. It reports true only
// when focus actually moved; an unfocused widget or a declined move leaves
// the event for someone else.
//
// Two FocusManager implementations exist:
//
//   - DefaultFocus searches the container for the focused element and
//     transfers focus through the component system.
//   - ManagedFocus keeps an explicit per-component registry.
//
// The manager is chosen once when the Resolver is built.
package keying
