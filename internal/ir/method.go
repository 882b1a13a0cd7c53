package ir

// Method is a concrete method definition. Ref is its MethodRef;
// Code is nil for external or abstract methods.
type Method struct {
	Ref         MethodRef
	Access      AccessFlags
	Class       Type
	CodeBody    *Code
	External    bool
	MinAPILevel int

	// Callers is not filled in by any pass in this repository:
	// internal/inliner keeps its caller/callee edges in its own
	// CandidateMap instead.
	Callers []*Method
}

// Proto returns the method's signature.
func (m *Method) Proto() Proto { return m.Ref.Proto }

// Code returns the method's body, or nil if External.
func (m *Method) Code() *Code { return m.CodeBody }

// IsVirtual reports whether m dispatches virtually (neither static nor
// a direct/constructor method).
func (m *Method) IsVirtual() bool {
	return !m.Access.IsStatic() && !m.Access.IsConstructor() && !m.Access.IsPrivate()
}

// IsStatic reports whether m is a static method.
func (m *Method) IsStatic() bool { return m.Access.IsStatic() }

// IsConcrete reports whether m has a body (is neither abstract nor
// external).
func (m *Method) IsConcrete() bool { return !m.External && !m.Access.IsAbstract() && m.CodeBody != nil }

// IsExternal reports whether m is declared outside the optimizer's
// scope (a platform/library method with no body to inline).
func (m *Method) IsExternal() bool { return m.External }

// Field is a concrete field definition.
type Field struct {
	Ref    FieldRef
	Access AccessFlags
	Class  Type
}

// IsVolatile reports whether the field is marked volatile, which makes
// any access to it a CSE barrier (spec.md §4.7).
func (f *Field) IsVolatile() bool { return f.Access.IsVolatile() }
