package input

type Handler func(Event)

type listener struct {
	id uint64
	h  Handler
}

type Bus struct {
	nextID    uint64
	listeners map[Kind][]listener
}

func NewBus() *Bus {
	return &Bus{listeners: make(map[Kind][]listener)}
}

// Listen registers h for events of kind k. The returned func removes it and
// may be called any number of times.
func (b *Bus) Listen(k Kind, h Handler) func() {
	b.nextID++
	id := b.nextID
	b.listeners[k] = append(b.listeners[k], listener{id: id, h: h})

	return func() {
		ls := b.listeners[k]
		for i, l := range ls {
			if l.id == id {
				b.listeners[k] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Emit dispatches e synchronously. Listeners added or removed during
// dispatch take effect from the next event.
func (b *Bus) Emit(e Event) {
	ls := b.listeners[e.Kind()]
	if len(ls) == 0 {
		return
	}
	snapshot := make([]listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		l.h(e)
	}
}

// Len reports the number of registered listeners across all kinds.
func (b *Bus) Len() int {
	n := 0
	for _, ls := range b.listeners {
		n += len(ls)
	}
	return n
}
