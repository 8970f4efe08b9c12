package vm

import (
	"sort"
)

// ---------------------------------------------------------------------------
// Object: the addressable unit of a process heap
// ---------------------------------------------------------------------------

// ObjectPointer is a lightweight reference to a heap-resident Object. A
// pointer is valid only while the object it names is reachable from some
// root set; a pointer that survives the object's reclamation is a defect in
// the caller, never a state this package produces.
type ObjectPointer = *Object

// Object is a heap-allocated Ember object. Objects are header-less by
// default: the header carrying the name, the attribute/constant/method maps
// and the pinned/truthy flags is only allocated when one of those fields is
// first written.
type Object struct {
	proto  ObjectPointer
	header *ObjectHeader
	value  ObjectValue
}

// Proto returns the object's prototype, or nil.
func (o *Object) Proto() ObjectPointer {
	return o.proto
}

// SetProto sets the object's prototype.
func (o *Object) SetProto(proto ObjectPointer) {
	o.proto = proto
}

// Value returns the object's payload.
func (o *Object) Value() ObjectValue {
	return o.value
}

// SetValue replaces the object's payload.
func (o *Object) SetValue(value ObjectValue) {
	o.value = value
}

// Header returns the object's header, or nil if none has been allocated.
func (o *Object) Header() *ObjectHeader {
	return o.header
}

// HasHeader reports whether a header has been allocated.
func (o *Object) HasHeader() bool {
	return o.header != nil
}

// ensureHeader returns the object's header, allocating it first if needed.
func (o *Object) ensureHeader() *ObjectHeader {
	if o.header == nil {
		o.header = NewObjectHeader()
	}
	return o.header
}

// ---------------------------------------------------------------------------
// Header field access
// ---------------------------------------------------------------------------

// Name returns the object's name and whether one has been set.
func (o *Object) Name() (string, bool) {
	if o.header == nil {
		return "", false
	}
	return o.header.Name()
}

// SetName names the object, allocating the header on first use.
func (o *Object) SetName(name string) {
	o.ensureHeader().SetName(name)
}

// IsTruthy reports whether the object is truthy in conditionals. Objects
// without a header are truthy.
func (o *Object) IsTruthy() bool {
	if o.header == nil {
		return true
	}
	return o.header.IsTruthy()
}

// SetFalsy marks the object falsy, allocating the header on first use.
func (o *Object) SetFalsy() {
	o.ensureHeader().SetFalsy()
}

// IsPinned reports whether the object is exempt from relocation and
// reclamation. Objects without a header are not pinned.
func (o *Object) IsPinned() bool {
	if o.header == nil {
		return false
	}
	return o.header.IsPinned()
}

// SetPinned stores the pinned flag, allocating the header on first use.
func (o *Object) SetPinned(pinned bool) {
	o.ensureHeader().SetPinned(pinned)
}

// ---------------------------------------------------------------------------
// Attributes, constants and methods
// ---------------------------------------------------------------------------

// Attribute returns the attribute stored under name.
func (o *Object) Attribute(name string) (ObjectPointer, bool) {
	if o.header == nil {
		return nil, false
	}
	ptr, ok := o.header.attributes[name]
	return ptr, ok
}

// SetAttribute stores an attribute, allocating the header on first use.
func (o *Object) SetAttribute(name string, ptr ObjectPointer) {
	o.ensureHeader().attributes[name] = ptr
}

// AttributeNames returns the attribute names in sorted order.
func (o *Object) AttributeNames() []string {
	if o.header == nil {
		return nil
	}
	return sortedNames(o.header.attributes)
}

// Constant returns the constant stored under name.
func (o *Object) Constant(name string) (ObjectPointer, bool) {
	if o.header == nil {
		return nil, false
	}
	ptr, ok := o.header.constants[name]
	return ptr, ok
}

// SetConstant stores a constant, allocating the header on first use.
func (o *Object) SetConstant(name string, ptr ObjectPointer) {
	o.ensureHeader().constants[name] = ptr
}

// ConstantNames returns the constant names in sorted order.
func (o *Object) ConstantNames() []string {
	if o.header == nil {
		return nil
	}
	return sortedNames(o.header.constants)
}

// Method returns the method stored under name.
func (o *Object) Method(name string) (ObjectPointer, bool) {
	if o.header == nil {
		return nil, false
	}
	ptr, ok := o.header.methods[name]
	return ptr, ok
}

// SetMethod stores a method, allocating the header on first use.
func (o *Object) SetMethod(name string, ptr ObjectPointer) {
	o.ensureHeader().methods[name] = ptr
}

// MethodNames returns the method names in sorted order.
func (o *Object) MethodNames() []string {
	if o.header == nil {
		return nil
	}
	return sortedNames(o.header.methods)
}

func sortedNames(m map[string]ObjectPointer) []string {
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
