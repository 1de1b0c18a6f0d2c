package editor

import "skyraid/levels"

// Container is the runtime wrapper around one placed entity: a transform the
// user can manipulate plus a lock flag. The underlying record keeps its
// stored sub-grid precision until a drag actually commits; variant fields are
// carried through untouched so saving never narrows the record's shape.
type Container struct {
	record levels.BaseEntity

	// live transform, written on every drag update
	Pos      levels.Position
	Rotation float64
	Scale    float64

	Locked bool
}

// NewContainer wraps a record created on placement or level load.
func NewContainer(record levels.BaseEntity) *Container {
	return &Container{
		record:   record,
		Pos:      record.Position,
		Rotation: record.Rotation,
		Scale:    record.Scale,
	}
}

// ID returns the stable entity id. Ids are never regenerated by edits.
func (c *Container) ID() string {
	return c.record.ID
}

// Type returns the entity's discriminator.
func (c *Container) Type() levels.EntityType {
	return c.record.Type
}

// Commit writes the live transform into the persisted record.
func (c *Container) Commit() {
	c.record.Position = c.Pos
	c.record.Rotation = c.Rotation
	if c.Scale > 0 {
		c.record.Scale = c.Scale
	}
}

// Record returns the persisted shape with the current transform committed.
func (c *Container) Record() levels.BaseEntity {
	c.Commit()
	return c.record
}

// StoredRecord returns the persisted shape as-is, without committing any
// in-flight transform. Undo snapshots use this so an uncommitted drag never
// leaks into history.
func (c *Container) StoredRecord() levels.BaseEntity {
	return c.record
}
