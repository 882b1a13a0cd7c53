package ir

// MethodRef names a method without necessarily resolving to a
// concrete Method: the class it was invoked against, its name, and its
// signature. Two call sites invoking the "same" method by reference
// equality is not assumed; MethodRef is a plain value type, compared
// fieldwise via Equals.
type MethodRef struct {
	Class Type
	Name  string
	Proto Proto
}

// Equals reports whether r and other name the same method.
func (r MethodRef) Equals(other MethodRef) bool {
	return r.Class == other.Class && r.Name == other.Name && r.Proto.Equals(other.Proto)
}

// String renders r in Dalvik-ish shorthand for logging, e.g.
// "Foo.bar:(I)V".
func (r MethodRef) String() string {
	return string(r.Class) + "." + r.Name + ":" + r.Proto.String()
}

// FieldRef names a field: its declaring class, name, and type.
type FieldRef struct {
	Class Type
	Name  string
	FType Type
}

// Equals reports whether r and other name the same field.
func (r FieldRef) Equals(other FieldRef) bool {
	return r.Class == other.Class && r.Name == other.Name && r.FType == other.FType
}
