// Package mutagen defines the generation/mutation capability layer shared by
// every evolvable type in the module. Randomness is always passed explicitly
// as a *rand.Rand; no type keeps hidden generator state, so every operation
// is reentrant and safe to call from any goroutine.
package mutagen

import (
	"math/rand/v2"
)

// --- Event reporting ---

// EventKind classifies a lifecycle event reported by an evolvable type.
type EventKind uint8

const (
	EventGenerate EventKind = iota
	EventMutate
	EventUpdate
)

func (k EventKind) String() string {
	switch k {
	case EventGenerate:
		return "generate"
	case EventMutate:
		return "mutate"
	case EventUpdate:
		return "update"
	}
	return "unknown"
}

// Event is a single named generate/mutate/update occurrence.
type Event struct {
	Key  string
	Kind EventKind
}

// Sink receives events from generation and mutation entry points.
// The profiler implements Sink; callers that don't care pass a nil Context.
type Sink interface {
	HandleEvent(Event)
}

// --- Contexts ---

// Context carries cross-cutting state through recursive generation and
// mutation. A nil *Context is valid and reports nothing.
type Context struct {
	Events Sink
}

// Report forwards an event to the context's sink, if any.
func (c *Context) Report(key string, kind EventKind) {
	if c == nil || c.Events == nil {
		return
	}
	c.Events.HandleEvent(Event{Key: key, Kind: kind})
}

// UpdateContext carries state through per-step update traversal.
type UpdateContext struct {
	Events Sink
}

// Report forwards an update event to the context's sink, if any.
func (c *UpdateContext) Report(key string) {
	if c == nil || c.Events == nil {
		return
	}
	c.Events.HandleEvent(Event{Key: key, Kind: EventUpdate})
}

// --- Capability interfaces ---

// Mutatable is implemented by values that can be perturbed in place.
// Implementations resample the whole value or tweak a single leaf,
// chosen by a fair coin flip on rng.
type Mutatable interface {
	Mutate(rng *rand.Rand, ctx *Context)
}

// Updatable is implemented by values with per-step update behaviour,
// driven by an external stepping loop.
type Updatable interface {
	Update(ctx *UpdateContext)
}

// GenerateFunc constructs a fresh value of T from a randomness source.
type GenerateFunc[T any] func(rng *rand.Rand, ctx *Context) T
