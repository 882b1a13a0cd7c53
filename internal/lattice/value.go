package lattice

// Kind is the tri-state tag a scaffolded domain attaches to an
// AbstractValue payload.
type Kind int

const (
	// KindBottom means the payload carries no information because the
	// underlying set of concrete states is empty ("unreachable").
	KindBottom Kind = iota
	// KindValue means the payload is a genuine, non-extremal value.
	KindValue
	// KindTop means "no information" — the payload, if any, is discarded.
	KindTop
)

func (k Kind) String() string {
	switch k {
	case KindBottom:
		return "Bottom"
	case KindValue:
		return "Value"
	case KindTop:
		return "Top"
	default:
		return "Unknown"
	}
}

// AbstractValue is the payload type wrapped by Scaffolding. Unlike a
// full Domain, it does not carry bottom/top directly: every method that
// would need to distinguish bottom/top/value instead reports the result
// through Kind(), and the scaffolding combinator centralizes the
// extremal-case dispatch around it.
//
// As with Domain, V is conventionally instantiated as a pointer type
// (e.g. AbstractValue[*myPayload]) since JoinWith et al. mutate in
// place.
type AbstractValue[V any] interface {
	// Kind reports whether the current payload represents Bottom, a
	// genuine Value, or Top.
	Kind() Kind

	// Leq is only ever invoked by Scaffolding when both operands report
	// KindValue; the payload need not handle extremal cases itself.
	Leq(other V) bool
	Equals(other V) bool

	JoinWith(other V)
	WidenWith(other V)
	MeetWith(other V)
	NarrowWith(other V)

	Copy() V
}
