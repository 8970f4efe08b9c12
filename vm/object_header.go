package vm

// ---------------------------------------------------------------------------
// ObjectHeader: lazily allocated object metadata
// ---------------------------------------------------------------------------

// ObjectHeader stores the extended metadata of an object: its name (used in
// error messages if present), its attributes, constants and methods, and the
// pinned/truthy flags. A header is only allocated when one of these fields is
// first needed, so header-less objects stay compact.
type ObjectHeader struct {
	name    string
	hasName bool

	attributes map[string]ObjectPointer
	constants  map[string]ObjectPointer
	methods    map[string]ObjectPointer

	// When true the collector will neither relocate nor reclaim the
	// object. The header only stores the flag; honoring it is the
	// collector's job.
	pinned bool

	// Whether the object is considered truthy in conditionals.
	truthy bool
}

// NewObjectHeader returns a header with no name, empty attribute, constant
// and method maps, pinned = false and truthy = true.
func NewObjectHeader() *ObjectHeader {
	return &ObjectHeader{
		attributes: make(map[string]ObjectPointer),
		constants:  make(map[string]ObjectPointer),
		methods:    make(map[string]ObjectPointer),
		truthy:     true,
	}
}

// Name returns the object's name and whether one has been set.
func (h *ObjectHeader) Name() (string, bool) {
	return h.name, h.hasName
}

// SetName sets the object's name.
func (h *ObjectHeader) SetName(name string) {
	h.name = name
	h.hasName = true
}

// IsPinned reports whether the object is exempt from relocation and
// reclamation.
func (h *ObjectHeader) IsPinned() bool {
	return h.pinned
}

// SetPinned stores the pinned flag.
func (h *ObjectHeader) SetPinned(pinned bool) {
	h.pinned = pinned
}

// IsTruthy reports whether the object is truthy in conditionals.
func (h *ObjectHeader) IsTruthy() bool {
	return h.truthy
}

// SetFalsy flips truthy to false. Idempotent; no other field is touched.
func (h *ObjectHeader) SetFalsy() {
	h.truthy = false
}
