package core

// Bus is a topic-based publish/subscribe channel for cross-subsystem
// notifications. Handlers run synchronously inside Emit, in
// registration order; events are never queued or replayed. Like the
// Registry, a Bus is owned by the single control goroutine.
type Bus struct {
	handlers map[string][]func(any)
}

// NewBus returns an empty event bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]func(any))}
}

// Subscribe registers fn for topic. The handler is invoked only when
// the emitted payload's runtime type is T; other payloads on the same
// topic are silently skipped.
func Subscribe[T any](b *Bus, topic string, fn func(T)) {
	b.handlers[topic] = append(b.handlers[topic], func(v any) {
		if tv, ok := v.(T); ok {
			fn(tv)
		}
	})
}

// Emit delivers value to every matching handler on topic, in the order
// they subscribed, before returning.
func (b *Bus) Emit(topic string, value any) {
	for _, h := range b.handlers[topic] {
		h(value)
	}
}
