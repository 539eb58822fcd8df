package rtype

// Type is the type of a Port: either a value type or a state type. Both
// Value and State implement it, so graph code can hold a single Type field
// per port regardless of whether it carries data or threads state.
type Type interface {
	EqualType(Type) bool
	String() string
	isType()
}

func (Value) isType() {}
func (State) isType() {}

// EqualType implements Type for Value, delegating to the concrete Equal.
func (v Value) EqualType(t Type) bool {
	o, ok := t.(Value)
	return ok && v.Equal(o)
}

// EqualType implements Type for State, delegating to the concrete Equal.
func (s State) EqualType(t Type) bool {
	o, ok := t.(State)
	return ok && s.Equal(o)
}
