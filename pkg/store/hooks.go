package store

import "github.com/mesh-intelligence/larder/pkg/types"

// Event names a lifecycle hook point around collection mutations.
type Event string

// Lifecycle hook events.
const (
	BeforeInsert Event = "beforeInsert"
	AfterInsert  Event = "afterInsert"
	BeforeUpdate Event = "beforeUpdate"
	AfterUpdate  Event = "afterUpdate"
	BeforeUpsert Event = "beforeUpsert"
	AfterUpsert  Event = "afterUpsert"
	BeforeRemove Event = "beforeRemove"
	AfterRemove  Event = "afterRemove"
)

// HookContext carries the arguments of the operation a hook wraps. Fields
// are populated per event: Record for insert/upsert events, Query and Patch
// for update events, Query for remove events, Count for after-update and
// after-remove, Inserted for afterUpsert.
type HookContext struct {
	Collection string

	// Record is the insert payload (before events, mutable) or the stored
	// record's clone (after events).
	Record types.Record

	// Query and Patch mirror the update/remove arguments.
	Query any
	Patch types.Record

	// Count is the number of records affected by an update or remove.
	Count int

	// Inserted distinguishes an upsert that inserted from one that updated.
	Inserted bool
}

// Hook is a lifecycle callback. Hooks run sequentially in registration
// order; the first error aborts the surrounding operation (for before
// events) or is returned to the caller after the mutation (for after
// events).
type Hook func(ctx *HookContext) error

// On registers a hook for an event on this collection. Hooks are not
// persisted; they belong to the collection handle.
func (c *Collection) On(event Event, hook Hook) {
	c.hooksMu.Lock()
	defer c.hooksMu.Unlock()
	c.hooks[event] = append(c.hooks[event], hook)
}

// runHooks invokes the hooks registered for an event in order, stopping at
// the first error.
func (c *Collection) runHooks(event Event, ctx *HookContext) error {
	c.hooksMu.RLock()
	hooks := c.hooks[event]
	c.hooksMu.RUnlock()

	for _, h := range hooks {
		if err := h(ctx); err != nil {
			return err
		}
	}
	return nil
}
