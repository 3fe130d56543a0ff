package ecs

// contextRegistry holds per-entity, view-side associations that are opaque
// to the core: arbitrary keyed values a host (editor tooling, a UI binding
// layer, a save-adjacent inspector) attaches to an entity without the core
// ever interpreting them (§3 glossary: "context registry (view-side
// associations; opaque to the core)"). Built fresh; nothing in this
// lineage has an existing analogue for this surface.
type contextRegistry struct {
	values map[EntityID]map[string]any
}

func newContextRegistry() *contextRegistry {
	return &contextRegistry{values: make(map[EntityID]map[string]any)}
}

func (c *contextRegistry) set(e Entity, key string, value any) {
	m, ok := c.values[e.ID]
	if !ok {
		m = make(map[string]any)
		c.values[e.ID] = m
	}
	m[key] = value
}

func (c *contextRegistry) get(e Entity, key string) (any, bool) {
	m, ok := c.values[e.ID]
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

func (c *contextRegistry) remove(e Entity, key string) {
	if m, ok := c.values[e.ID]; ok {
		delete(m, key)
	}
}

// dropEntity removes every association for e, called during entity
// teardown (§4.1's "notify ... context registry to drop associations").
func (c *contextRegistry) dropEntity(e Entity) {
	delete(c.values, e.ID)
}

func (c *contextRegistry) reset() {
	c.values = make(map[EntityID]map[string]any)
}

// SetContext attaches an opaque keyed value to e.
func (w *World) SetContext(e Entity, key string, value any) {
	w.contexts.set(e, key, value)
}

// GetContext retrieves a value previously attached to e via SetContext.
func (w *World) GetContext(e Entity, key string) (any, bool) {
	return w.contexts.get(e, key)
}

// RemoveContext detaches a single keyed value from e.
func (w *World) RemoveContext(e Entity, key string) {
	w.contexts.remove(e, key)
}
