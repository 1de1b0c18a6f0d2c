package events

// Event names shared by the editor, the test bridge and the playthrough
// runner. Payload types are documented next to each name.
const (
	ToolChange           = "tool:change"           // editor.Tool
	EntityTypeChange     = "entityType:change"     // levels.EntityType
	GridSizeChange       = "grid:sizeChange"       // int
	GridVisibilityChange = "grid:visibilityChange" // bool
	SelectionChange      = "selection:change"      // []string (selected ids)
	LevelDirtyChange     = "level:dirtyChange"     // bool

	EnemyRemoved  = "enemy:removed"  // playtest.EnemyRemoved
	TestStats     = "test:stats"     // playtest.Stats
	TestCompleted = "test:completed" // nil
	TestStop      = "test:stop"      // nil
)

// Handler receives the payload published with Emit.
type Handler func(data any)

type subscriber struct {
	id int
	fn Handler
}

// Bus is a synchronous named-event dispatcher. Everything runs on the single
// game tick, so Emit calls handlers inline and no locking is involved.
type Bus struct {
	nextID int
	subs   map[string][]subscriber
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscriber)}
}

// Subscribe registers fn for the named event and returns an unsubscribe
// function. Unsubscribing twice is harmless.
func (b *Bus) Subscribe(name string, fn Handler) func() {
	b.nextID++
	id := b.nextID
	b.subs[name] = append(b.subs[name], subscriber{id: id, fn: fn})
	return func() {
		list := b.subs[name]
		for i := range list {
			if list[i].id == id {
				b.subs[name] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every handler registered for name, in subscription order.
func (b *Bus) Emit(name string, data any) {
	// Copy so a handler that unsubscribes mid-dispatch doesn't skip entries.
	list := b.subs[name]
	snapshot := make([]subscriber, len(list))
	copy(snapshot, list)
	for _, s := range snapshot {
		s.fn(data)
	}
}

// SubscriberCount reports how many handlers are registered for name.
func (b *Bus) SubscriberCount(name string) int {
	return len(b.subs[name])
}
