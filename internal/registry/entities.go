// Package registry exposes the static reference data the workbench annotates
// events and audits with: organizational entities and the persona roster.
// Both registries are read-only at runtime; lookups never mutate.
package registry

import (
	id "workbench/pkg/domain"
)

// EntityType classifies an organizational entity.
type EntityType string

const (
	EntityTypePlatform    EntityType = "platform"
	EntityTypeProduct     EntityType = "product"
	EntityTypeApplication EntityType = "application"
)

// EntityTypes lists all supported entity types.
func EntityTypes() []EntityType {
	return []EntityType{EntityTypePlatform, EntityTypeProduct, EntityTypeApplication}
}

// Entity is an organizational object an event or audit can be associated with.
type Entity struct {
	ID       id.EntityID `json:"id"`
	Name     string      `json:"name"`
	Type     EntityType  `json:"type"`
	ParentID id.EntityID `json:"parentId,omitempty"`
	Tag      string      `json:"tag,omitempty"`
}

// Entities is a read-only lookup over the seeded entity set.
type Entities struct {
	all  []Entity
	byID map[id.EntityID]Entity
}

// NewEntities indexes the given entity set. Pass SeedEntities() for the
// standard roster.
func NewEntities(entities []Entity) *Entities {
	byID := make(map[id.EntityID]Entity, len(entities))
	for _, e := range entities {
		byID[e.ID] = e
	}
	return &Entities{all: entities, byID: byID}
}

// ByID returns the entity and whether it exists. Dangling references resolve
// to found=false; callers filter silently.
func (r *Entities) ByID(entityID id.EntityID) (Entity, bool) {
	e, ok := r.byID[entityID]
	return e, ok
}

// ByType returns all entities of the given type in seed order.
func (r *Entities) ByType(t EntityType) []Entity {
	var out []Entity
	for _, e := range r.all {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// All returns the full entity set in seed order.
func (r *Entities) All() []Entity {
	return append([]Entity{}, r.all...)
}

// Hierarchy groups entities by type, keyed by the type value.
func (r *Entities) Hierarchy() map[EntityType][]Entity {
	out := make(map[EntityType][]Entity, len(EntityTypes()))
	for _, t := range EntityTypes() {
		out[t] = r.ByType(t)
	}
	return out
}

// SeedEntities returns the standard organizational entity set.
func SeedEntities() []Entity {
	return []Entity{
		{ID: "platform-1", Name: "Atlas Core", Type: EntityTypePlatform},
		{ID: "platform-2", Name: "Atlas Marketplace", Type: EntityTypePlatform},

		{ID: "product-1", Name: "AWS Aurora MySQL", Type: EntityTypeProduct, Tag: "storage"},
		{ID: "product-2", Name: "AWS Aurora Postgres", Type: EntityTypeProduct, Tag: "storage"},
		{ID: "product-3", Name: "AWS S3", Type: EntityTypeProduct, Tag: "storage"},

		{ID: "product-4", Name: "AWS EC2", Type: EntityTypeProduct, Tag: "compute"},
		{ID: "product-5", Name: "AWS ECS", Type: EntityTypeProduct, Tag: "compute"},
	}
}
