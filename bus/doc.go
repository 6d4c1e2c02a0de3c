// Package bus fans listener events out to imported listeners.
//
// There are two buses. Listeners holds the listeners given when the run
// starts. LibraryListeners holds listeners owned by libraries and keeps one
// set of them per running suite. Both implement listen.Events and deliver
// every event to their active listeners in registration order. A listener
// that fails does not affect the others; a timeout stops delivery and is
// returned to the caller.
package bus
