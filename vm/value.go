package vm

// ---------------------------------------------------------------------------
// ObjectValue: tagged object payloads
// ---------------------------------------------------------------------------

// ValueKind identifies the payload variant stored in an ObjectValue.
type ValueKind int

const (
	KindNone ValueKind = iota
	KindInteger
	KindFloat
	KindString
	KindArray
)

// String returns the kind name, for diagnostics.
func (k ValueKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// ObjectValue is the payload of a heap object. Most objects carry no payload
// at all (KindNone) and exist only for their header and prototype chain.
// Array payloads reference other heap objects and are part of the object
// graph a copier or collector must traverse.
type ObjectValue struct {
	kind    ValueKind
	integer int64
	float   float64
	text    string
	array   []ObjectPointer
}

// NoneValue returns the empty payload.
func NoneValue() ObjectValue {
	return ObjectValue{kind: KindNone}
}

// IntegerValue returns an integer payload.
func IntegerValue(v int64) ObjectValue {
	return ObjectValue{kind: KindInteger, integer: v}
}

// FloatValue returns a float payload.
func FloatValue(v float64) ObjectValue {
	return ObjectValue{kind: KindFloat, float: v}
}

// StringValue returns a string payload.
func StringValue(s string) ObjectValue {
	return ObjectValue{kind: KindString, text: s}
}

// ArrayValue returns an array payload referencing the given objects. The
// slice is used directly, not copied.
func ArrayValue(elements []ObjectPointer) ObjectValue {
	return ObjectValue{kind: KindArray, array: elements}
}

// Kind returns the payload variant.
func (v ObjectValue) Kind() ValueKind {
	return v.kind
}

// IsNone reports whether the payload is empty.
func (v ObjectValue) IsNone() bool {
	return v.kind == KindNone
}

// Integer returns the integer payload. Valid only when Kind() == KindInteger.
func (v ObjectValue) Integer() int64 {
	return v.integer
}

// Float returns the float payload. Valid only when Kind() == KindFloat.
func (v ObjectValue) Float() float64 {
	return v.float
}

// Text returns the string payload. Valid only when Kind() == KindString.
func (v ObjectValue) Text() string {
	return v.text
}

// Array returns the array payload. Valid only when Kind() == KindArray.
// Callers must not mutate the returned slice.
func (v ObjectValue) Array() []ObjectPointer {
	return v.array
}
