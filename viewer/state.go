package viewer

// State tracks a viewer through its lifecycle. Transitions are one-way:
// Uninitialized -> Loading -> Ready -> Disposed, with Error as an
// alternative terminal to Ready. Reconfigure starts a fresh cycle.
type State uint8

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateError
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	case StateDisposed:
		return "disposed"
	}
	return "unknown"
}
