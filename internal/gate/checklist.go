// Package gate tracks per-field completion flags for a customization
// session and derives the single predicate that decides whether the
// add-to-cart action is permitted: every registered field is complete.
//
// An empty checklist satisfies the predicate vacuously, so a session whose
// product defines no customization fields starts with the gate open. That
// matches the storefront behavior this service replaces and is deliberate;
// callers that want a closed gate by default must register at least one
// incomplete field.
package gate

import "sync"

// Control is the consumer whose enabled state the gate drives. The initial
// state of a Control is expected to be disabled.
type Control interface {
	SetEnabled(enabled bool)
}

// Checklist maps field keys to completion flags. Construct one per session
// and hand it to each field widget; widgets report completion through
// SetField and every update re-evaluates the gate immediately, so no
// external change observation is needed.
//
// All methods are safe for concurrent use.
type Checklist struct {
	mu     sync.Mutex
	fields map[string]bool
	subs   []func(satisfied bool)
}

// New returns an empty checklist.
func New() *Checklist {
	return &Checklist{fields: make(map[string]bool)}
}

// SetField inserts or overwrites the completion flag for key and notifies
// subscribers with the re-evaluated predicate. It is total: any key is
// accepted, and whether done may legitimately be true is the caller's
// concern.
func (c *Checklist) SetField(key string, done bool) {
	c.mu.Lock()
	c.fields[key] = done
	satisfied := c.allSatisfiedLocked()
	subs := c.subs
	c.mu.Unlock()

	for _, fn := range subs {
		fn(satisfied)
	}
}

// Forget removes key from the checklist, for fields that stop existing
// altogether (not merely become optional). Subscribers are notified.
func (c *Checklist) Forget(key string) {
	c.mu.Lock()
	delete(c.fields, key)
	satisfied := c.allSatisfiedLocked()
	subs := c.subs
	c.mu.Unlock()

	for _, fn := range subs {
		fn(satisfied)
	}
}

// AllSatisfied reports whether every registered field is complete. An empty
// checklist reports true (vacuous truth; see the package comment).
func (c *Checklist) AllSatisfied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.allSatisfiedLocked()
}

func (c *Checklist) allSatisfiedLocked() bool {
	for _, done := range c.fields {
		if !done {
			return false
		}
	}
	return true
}

// ApplyGate sets target enabled iff every field is complete. Call it after
// wiring a new consumer, and after any external change that may have
// altered which fields are required.
func (c *Checklist) ApplyGate(target Control) {
	target.SetEnabled(c.AllSatisfied())
}

// Subscribe registers fn to run after every SetField or Forget with the
// freshly evaluated predicate. Subscribers run on the mutating goroutine,
// outside the checklist lock.
func (c *Checklist) Subscribe(fn func(satisfied bool)) {
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

// BindControl subscribes target so that its enabled state tracks the
// predicate from now on, and applies the current state once.
func (c *Checklist) BindControl(target Control) {
	c.Subscribe(target.SetEnabled)
	c.ApplyGate(target)
}

// Missing returns the keys whose flag is currently false, sorted order not
// guaranteed. Useful for telling the shopper what is left to fill in.
func (c *Checklist) Missing() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var keys []string
	for key, done := range c.fields {
		if !done {
			keys = append(keys, key)
		}
	}
	return keys
}

// Snapshot returns a copy of the current field map.
func (c *Checklist) Snapshot() map[string]bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]bool, len(c.fields))
	for key, done := range c.fields {
		out[key] = done
	}
	return out
}

// Len returns the number of registered fields.
func (c *Checklist) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fields)
}
