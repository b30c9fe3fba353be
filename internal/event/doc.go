// Package event provides the synchronous notification bus that connects the
// toolbar header to the rest of the editor chrome.
//
// Everything in the chrome runs on one UI goroutine, so delivery is
// synchronous: Publish returns after every matching handler has run, in
// priority order (lower first), ties broken by subscription order. This is
// what lets the header finish a positioning pass with a popup broadcast and
// know every mounted popup has already followed it.
//
// # Topics
//
//	ui.popups.reposition    mounted floating popups must recompute placement
//	header.shown            the inline toolbar became visible
//	header.hidden           the inline toolbar was hidden
//	header.mode.changed     docking mode flipped between top and bottom
//
// Subscriptions accept wildcard patterns, see package topic.
//
// # Errors
//
// Handler errors and recovered panics are collected and returned from
// Publish as a single multierr error. One failing handler never stops
// delivery to the others.
package event
