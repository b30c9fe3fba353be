// Package app ties one inline editor to its toolbar.
//
// A Session owns the header, its docking controller, the popup registry
// and the event bus they talk over, and turns editor triggers into header
// operations:
//
//	Focus       Show
//	Blur        Hide
//	Remove      mark removed, Hide
//	Scroll      UpdateMode(true), docking refresh
//	Resize      Update(true)
//	NodeChange  Update(false) when the target moved or resized
//	config      UpdateMode(false), Update(true)
//
// Sessions are not safe for concurrent use. Callers on other goroutines,
// such as a config watcher, must hand work to the goroutine that owns the
// page.
package app
