package store

import (
	"sort"
	"sync"
	"time"

	"github.com/mesh-intelligence/larder/internal/deep"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// Collection is the CRUD surface over one named record sequence inside the
// store's active root. Collections hold no record data themselves; every
// operation reads and writes through the store. Records returned from any
// operation are deep clones, so mutating them never changes store state.
type Collection struct {
	store *Store
	name  string

	hooksMu sync.RWMutex
	hooks   map[Event][]Hook
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Insert validates payload against the collection's unique indices and
// relations, stamps the system fields (id, created_at, updated_at), appends
// the record, and persists. Any id or timestamps present in payload are
// discarded. Validation failures abort before anything is appended.
// Returns a clone of the stored record.
func (c *Collection) Insert(payload types.Record) (types.Record, error) {
	if err := c.runHooks(BeforeInsert, &HookContext{Collection: c.name, Record: payload}); err != nil {
		return nil, err
	}

	c.store.mu.Lock()
	rec, err := c.insertLocked(payload)
	c.store.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := cloneRecord(rec)
	if err := c.runHooks(AfterInsert, &HookContext{Collection: c.name, Record: out}); err != nil {
		return out, err
	}
	return out, nil
}

func (c *Collection) insertLocked(payload types.Record) (types.Record, error) {
	root := c.store.root()

	rec := cloneRecord(payload)
	for _, f := range types.SystemFields {
		delete(rec, f)
	}

	if err := c.checkUnique(root, rec, ""); err != nil {
		return nil, err
	}
	if err := c.store.checkRelations(root, c.name, rec); err != nil {
		return nil, err
	}

	now := timestamp()
	rec[types.FieldID] = types.FormatID(root.NextSerial(), c.name)
	rec[types.FieldCreatedAt] = now
	rec[types.FieldUpdatedAt] = now

	root.Data[c.name] = append(root.Data[c.name], rec)
	c.store.log.Debugw("record inserted", "collection", c.name, "id", rec[types.FieldID])

	if err := c.store.save(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Find returns clones of all records matching query, in insertion order.
// A nil query matches everything. Options may sort by a field (stable, so
// ties keep insertion order) and populate relation fields.
func (c *Collection) Find(query any, opts *types.FindOptions) ([]types.Record, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	root := c.store.root()
	var matched []types.Record
	for _, rec := range root.Data[c.name] {
		ok, err := matches(query, rec)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, rec)
		}
	}

	if opts != nil && opts.Sort != nil && opts.Sort.Field != "" {
		sortRecords(matched, opts.Sort)
	}

	out := make([]types.Record, len(matched))
	for i, rec := range matched {
		if opts != nil && opts.Populate {
			out[i] = c.store.populate(root, c.name, rec)
		} else {
			out[i] = cloneRecord(rec)
		}
	}
	return out, nil
}

// FindOne returns a clone of the first record matching query in collection
// order, or nil when nothing matches. Not-found is never an error.
func (c *Collection) FindOne(query any, opts *types.FindOptions) (types.Record, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	root := c.store.root()
	for _, rec := range root.Data[c.name] {
		ok, err := matches(query, rec)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if opts != nil && opts.Populate {
			return c.store.populate(root, c.name, rec), nil
		}
		return cloneRecord(rec), nil
	}
	return nil, nil
}

// Count returns the number of records matching query.
func (c *Collection) Count(query any) (int, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	n := 0
	for _, rec := range c.store.root().Data[c.name] {
		ok, err := matches(query, rec)
		if err != nil {
			return 0, err
		}
		if ok {
			n++
		}
	}
	return n, nil
}

// Update merges patch into every record matching query, refreshing
// updated_at. System fields in patch are ignored. The batch is all-or-
// nothing: every target is validated against unique indices and relations
// before any record is mutated, so a failing target leaves the store
// untouched. Returns the number of records updated; persists only when that
// count is positive.
func (c *Collection) Update(query any, patch types.Record) (int, error) {
	if err := c.runHooks(BeforeUpdate, &HookContext{Collection: c.name, Query: query, Patch: patch}); err != nil {
		return 0, err
	}

	c.store.mu.Lock()
	count, err := c.updateLocked(query, patch)
	c.store.mu.Unlock()
	if err != nil {
		return 0, err
	}

	after := &HookContext{Collection: c.name, Query: query, Patch: patch, Count: count}
	if err := c.runHooks(AfterUpdate, after); err != nil {
		return count, err
	}
	return count, nil
}

func (c *Collection) updateLocked(query any, patch types.Record) (int, error) {
	root := c.store.root()
	records := root.Data[c.name]

	filtered := cloneRecord(patch)
	for _, f := range types.SystemFields {
		delete(filtered, f)
	}

	var targets []int
	for i, rec := range records {
		ok, err := matches(query, rec)
		if err != nil {
			return 0, err
		}
		if ok {
			targets = append(targets, i)
		}
	}
	if len(targets) == 0 {
		return 0, nil
	}

	if err := c.validateUpdate(root, records, targets, filtered); err != nil {
		return 0, err
	}

	now := timestamp()
	for _, i := range targets {
		rec := records[i]
		for k, v := range filtered {
			rec[k] = deep.Clone(v)
		}
		rec[types.FieldUpdatedAt] = now
	}
	c.store.log.Debugw("records updated", "collection", c.name, "count", len(targets))

	if err := c.store.save(); err != nil {
		return len(targets), err
	}
	return len(targets), nil
}

// validateUpdate checks every target against unique indices and relations
// before any mutation. Unique values claimed by earlier targets in the same
// batch count as taken for later ones.
func (c *Collection) validateUpdate(root *types.Snapshot, records []types.Record, targets []int, patch types.Record) error {
	var uniqueFields []string
	for field, def := range root.Indices(c.name) {
		if def.Unique {
			if _, ok := patch[field]; ok {
				uniqueFields = append(uniqueFields, field)
			}
		}
	}

	claimed := make(map[string][]any)
	for _, i := range targets {
		rec := records[i]
		for _, field := range uniqueFields {
			next := patch[field]
			if cur, ok := rec[field]; ok && deep.Equal(cur, next) {
				continue
			}
			for j, other := range records {
				if j == i {
					continue
				}
				if ov, ok := other[field]; ok && deep.Equal(ov, next) {
					return &types.UniquenessError{Collection: c.name, Field: field, Value: next}
				}
			}
			for _, prior := range claimed[field] {
				if deep.Equal(prior, next) {
					return &types.UniquenessError{Collection: c.name, Field: field, Value: next}
				}
			}
			claimed[field] = append(claimed[field], next)
		}

		merged := cloneRecord(rec)
		for k, v := range patch {
			merged[k] = v
		}
		if err := c.store.checkRelations(root, c.name, merged); err != nil {
			return err
		}
	}
	return nil
}

// Upsert updates the first record matching query with data, or inserts data
// when nothing matches. Returns the refreshed record. The afterUpsert hook
// receives Inserted to distinguish the two paths.
func (c *Collection) Upsert(query any, data types.Record) (types.Record, error) {
	if err := c.runHooks(BeforeUpsert, &HookContext{Collection: c.name, Query: query, Record: data}); err != nil {
		return nil, err
	}

	existing, err := c.FindOne(query, nil)
	if err != nil {
		return nil, err
	}

	var out types.Record
	inserted := existing == nil
	if inserted {
		out, err = c.Insert(data)
	} else {
		byID := types.Where{types.FieldID: existing.ID()}
		if _, err = c.Update(byID, data); err == nil {
			out, err = c.FindOne(byID, nil)
		}
	}
	if err != nil {
		return nil, err
	}

	after := &HookContext{Collection: c.name, Record: out, Inserted: inserted}
	if err := c.runHooks(AfterUpsert, after); err != nil {
		return out, err
	}
	return out, nil
}

// Remove deletes every record matching query and returns the count removed.
// Persists only when at least one record was removed.
func (c *Collection) Remove(query any) (int, error) {
	if err := c.runHooks(BeforeRemove, &HookContext{Collection: c.name, Query: query}); err != nil {
		return 0, err
	}

	c.store.mu.Lock()
	count, err := c.removeLocked(query)
	c.store.mu.Unlock()
	if err != nil {
		return 0, err
	}

	if err := c.runHooks(AfterRemove, &HookContext{Collection: c.name, Query: query, Count: count}); err != nil {
		return count, err
	}
	return count, nil
}

func (c *Collection) removeLocked(query any) (int, error) {
	root := c.store.root()
	records := root.Data[c.name]

	kept := records[:0:0]
	for _, rec := range records {
		ok, err := matches(query, rec)
		if err != nil {
			return 0, err
		}
		if !ok {
			kept = append(kept, rec)
		}
	}
	count := len(records) - len(kept)
	if count == 0 {
		return 0, nil
	}

	root.Data[c.name] = kept
	c.store.log.Debugw("records removed", "collection", c.name, "count", count)

	if err := c.store.save(); err != nil {
		return count, err
	}
	return count, nil
}

// checkUnique fails when any unique-indexed field present in payload
// duplicates the value held by a record other than excludeID.
func (c *Collection) checkUnique(root *types.Snapshot, payload types.Record, excludeID string) error {
	for field, def := range root.Indices(c.name) {
		if !def.Unique {
			continue
		}
		v, ok := payload[field]
		if !ok {
			continue
		}
		for _, rec := range root.Data[c.name] {
			if excludeID != "" && rec.ID() == excludeID {
				continue
			}
			if rv, ok := rec[field]; ok && deep.Equal(rv, v) {
				return &types.UniquenessError{Collection: c.name, Field: field, Value: v}
			}
		}
	}
	return nil
}

// sortRecords stable-sorts records in place by one field.
func sortRecords(records []types.Record, s *types.Sort) {
	desc := s.Order == types.SortDesc
	sort.SliceStable(records, func(i, j int) bool {
		cmp := deep.Compare(records[i][s.Field], records[j][s.Field])
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// timestamp returns the current UTC time in RFC 3339 form with nanosecond
// precision, so consecutive mutations order strictly.
func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
