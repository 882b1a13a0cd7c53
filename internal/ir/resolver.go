package ir

// SearchKind selects a method-resolution strategy, per spec.md §6:
// Direct looks only in the exact class; Static/Virtual/Any walk up the
// superclass chain; Interface walks the interface graph.
type SearchKind int

const (
	SearchDirect SearchKind = iota
	SearchStatic
	SearchVirtual
	SearchAny
	SearchInterface
)

// FieldSearchKind selects a field-resolution strategy.
type FieldSearchKind int

const (
	FieldStatic FieldSearchKind = iota
	FieldInstance
	FieldAny
)

// Resolver maps references to concrete definitions. It is the
// collaborator named in spec.md §6 ("resolver(method_ref, search_kind)
// -> method_def").
type Resolver interface {
	ResolveMethod(ref MethodRef, kind SearchKind) (*Method, bool)
	ResolveField(class Type, name string, fty Type, kind FieldSearchKind) (*Field, bool)
}

// ScopeResolver is the minimal, in-scope-only Resolver this repository
// ships: it resolves purely by walking Scope's classes, with no
// knowledge of the platform SDK. Unknown/external references resolve
// to (nil, false), matching the "UnknownVirtual"/"UnknownField" legality
// categories' expectation that resolution can fail.
type ScopeResolver struct {
	scope *Scope
}

// NewScopeResolver builds a resolver over scope.
func NewScopeResolver(scope *Scope) *ScopeResolver {
	return &ScopeResolver{scope: scope}
}

// ResolveMethod implements Resolver.
func (r *ScopeResolver) ResolveMethod(ref MethodRef, kind SearchKind) (*Method, bool) {
	switch kind {
	case SearchDirect:
		return r.findInClass(ref.Class, ref.Name, ref.Proto)
	case SearchStatic, SearchAny:
		if m, ok := r.walkSuper(ref.Class, ref.Name, ref.Proto); ok {
			return m, true
		}
		if kind == SearchAny {
			return r.walkInterfaces(ref.Class, ref.Name, ref.Proto)
		}
		return nil, false
	case SearchVirtual:
		return r.walkSuper(ref.Class, ref.Name, ref.Proto)
	case SearchInterface:
		return r.walkInterfaces(ref.Class, ref.Name, ref.Proto)
	default:
		return nil, false
	}
}

func (r *ScopeResolver) findInClass(class Type, name string, proto Proto) (*Method, bool) {
	c, ok := r.scope.Lookup(class)
	if !ok {
		return nil, false
	}
	for _, m := range c.Methods {
		if m.Ref.Name == name && m.Ref.Proto.Equals(proto) {
			return m, true
		}
	}
	return nil, false
}

func (r *ScopeResolver) walkSuper(class Type, name string, proto Proto) (*Method, bool) {
	for class != "" {
		if m, ok := r.findInClass(class, name, proto); ok {
			return m, true
		}
		c, ok := r.scope.Lookup(class)
		if !ok {
			return nil, false
		}
		class = c.Super
	}
	return nil, false
}

func (r *ScopeResolver) walkInterfaces(class Type, name string, proto Proto) (*Method, bool) {
	c, ok := r.scope.Lookup(class)
	if !ok {
		return nil, false
	}
	for _, iface := range c.Interfaces {
		if m, ok := r.findInClass(iface, name, proto); ok {
			return m, true
		}
		if m, ok := r.walkInterfaces(iface, name, proto); ok {
			return m, true
		}
	}
	if c.Super != "" {
		return r.walkInterfaces(c.Super, name, proto)
	}
	return nil, false
}

// ResolveField implements Resolver.
func (r *ScopeResolver) ResolveField(class Type, name string, fty Type, kind FieldSearchKind) (*Field, bool) {
	for class != "" {
		c, ok := r.scope.Lookup(class)
		if !ok {
			return nil, false
		}
		for _, f := range c.Fields {
			if f.Ref.Name != name || f.Ref.FType != fty {
				continue
			}
			switch kind {
			case FieldStatic:
				if !f.Access.IsStatic() {
					continue
				}
			case FieldInstance:
				if f.Access.IsStatic() {
					continue
				}
			}
			return f, true
		}
		class = c.Super
	}
	return nil, false
}
