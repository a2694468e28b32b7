package markup

// Op names a structural operation reported to an Observer.
type Op string

const (
	OpNew     Op = "new"
	OpAppend  Op = "append"
	OpRemove  Op = "remove"
	OpClone   Op = "clone"
	OpFromMap Op = "from_map"
)

// Event describes one completed or rejected operation.
type Event struct {
	Op   Op
	Node NodeID

	// Err is non-nil when the operation was rejected.
	Err error

	// Identifiers is the number of identifiers registered in the arena
	// after the operation.
	Identifiers int
}

// Observer receives an Event for every structural operation. It is called
// with the arena lock held and must not call back into the arena.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe implements Observer.
func (f ObserverFunc) Observe(e Event) { f(e) }
