package ir

// Class is a concrete class definition: its supertype, interfaces, and
// owned methods/fields. Container identifies the DEX-level shard (the
// "store") the class belongs to, used by the inliner's cross-container
// legality checks (spec.md §4.6, CrossStoreReference).
type Class struct {
	Name       Type
	Super      Type
	Interfaces []Type
	Access     AccessFlags
	Methods    []*Method
	Fields     []*Field
	External   bool
	Container  string
}

// IsExternal reports whether c is outside the optimizer's scope.
func (c *Class) IsExternal() bool { return c.External }

// IsInterface reports whether c is a Java interface.
func (c *Class) IsInterface() bool { return c.Access.IsInterface() }

// Scope is the set of classes under optimization (spec.md §6,
// "classes_in_scope"), indexed by name for resolver lookups.
type Scope struct {
	classes map[Type]*Class
	order   []Type
}

// NewScope builds a Scope from an ordered class list. Order is
// preserved for any caller that needs deterministic iteration.
func NewScope(classes []*Class) *Scope {
	s := &Scope{classes: make(map[Type]*Class, len(classes))}
	for _, c := range classes {
		s.classes[c.Name] = c
		s.order = append(s.order, c.Name)
	}
	return s
}

// Classes returns every class in scope, in registration order.
func (s *Scope) Classes() []*Class {
	out := make([]*Class, len(s.order))
	for i, name := range s.order {
		out[i] = s.classes[name]
	}
	return out
}

// Lookup returns the Class named t, if it is in scope.
func (s *Scope) Lookup(t Type) (*Class, bool) {
	c, ok := s.classes[t]
	return c, ok
}
