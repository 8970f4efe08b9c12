// Package heapdump captures diagnostic snapshots of a process's mailbox
// object graph. A snapshot is seeded from the same root sets the collector
// uses, walks every reachable object, and can be serialized to CBOR and kept
// in a SQLite-backed store for later inspection.
package heapdump

import (
	"time"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/chazu/ember/vm"
)

var log = commonlog.GetLogger("ember.heapdump")

// ObjectRecord is the flattened form of one heap object. References to other
// objects are indexes into Snapshot.Objects; -1 means absent.
type ObjectRecord struct {
	Kind       string         `cbor:"1,keyasint"`
	Integer    int64          `cbor:"2,keyasint,omitempty"`
	Float      float64        `cbor:"3,keyasint,omitempty"`
	Text       string         `cbor:"4,keyasint,omitempty"`
	Array      []int          `cbor:"5,keyasint,omitempty"`
	Proto      int            `cbor:"6,keyasint"`
	Name       string         `cbor:"7,keyasint,omitempty"`
	HasName    bool           `cbor:"8,keyasint,omitempty"`
	Pinned     bool           `cbor:"9,keyasint,omitempty"`
	Truthy     bool           `cbor:"10,keyasint"`
	Attributes map[string]int `cbor:"11,keyasint,omitempty"`
	Constants  map[string]int `cbor:"12,keyasint,omitempty"`
	Methods    map[string]int `cbor:"13,keyasint,omitempty"`
}

// Snapshot is a point-in-time view of every object reachable from a
// mailbox's root sets. Root lists preserve queue order: MailboxRoots covers
// the internal and external queues, LocalRoots the locals queue.
type Snapshot struct {
	ID           string         `cbor:"1,keyasint"`
	ProcessID    uint64         `cbor:"2,keyasint"`
	CapturedAt   int64          `cbor:"3,keyasint"` // unix nanoseconds
	MailboxRoots []int          `cbor:"4,keyasint,omitempty"`
	LocalRoots   []int          `cbor:"5,keyasint,omitempty"`
	Objects      []ObjectRecord `cbor:"6,keyasint,omitempty"`
}

// Capture walks the object graph reachable from the process's mailbox roots
// and returns a snapshot. The mailbox is read through its collector-facing
// snapshot operations and is not mutated. Capture assumes the same quiescence
// the collector does: the owning process must not be running.
func Capture(proc *vm.Process) *Snapshot {
	snap := &Snapshot{
		ID:         uuid.NewString(),
		ProcessID:  proc.ID(),
		CapturedAt: time.Now().UnixNano(),
	}

	index := make(map[vm.ObjectPointer]int)
	queue := vm.NewWorkList()

	// visit assigns an index on first sight and schedules the object for
	// recording. Pop order of the queue matches index order, so the
	// records slice can simply be appended to while draining.
	visit := func(ptr vm.ObjectPointer) int {
		if ptr == nil {
			return -1
		}
		if i, ok := index[ptr]; ok {
			return i
		}
		i := len(index)
		index[ptr] = i
		queue.Push(ptr)
		return i
	}

	roots := proc.Mailbox().MailboxPointers()
	for {
		ptr, ok := roots.Pop()
		if !ok {
			break
		}
		snap.MailboxRoots = append(snap.MailboxRoots, visit(ptr))
	}

	roots = proc.Mailbox().LocalPointers()
	for {
		ptr, ok := roots.Pop()
		if !ok {
			break
		}
		snap.LocalRoots = append(snap.LocalRoots, visit(ptr))
	}

	for {
		ptr, ok := queue.Pop()
		if !ok {
			break
		}
		snap.Objects = append(snap.Objects, record(ptr, visit))
	}

	log.Infof("captured snapshot %s: %d objects from process %d",
		snap.ID, len(snap.Objects), snap.ProcessID)

	return snap
}

func record(ptr vm.ObjectPointer, visit func(vm.ObjectPointer) int) ObjectRecord {
	value := ptr.Value()

	rec := ObjectRecord{
		Kind:   value.Kind().String(),
		Proto:  visit(ptr.Proto()),
		Truthy: ptr.IsTruthy(),
		Pinned: ptr.IsPinned(),
	}

	switch value.Kind() {
	case vm.KindInteger:
		rec.Integer = value.Integer()
	case vm.KindFloat:
		rec.Float = value.Float()
	case vm.KindString:
		rec.Text = value.Text()
	case vm.KindArray:
		elements := value.Array()
		rec.Array = make([]int, len(elements))
		for i, element := range elements {
			rec.Array[i] = visit(element)
		}
	}

	if name, ok := ptr.Name(); ok {
		rec.Name = name
		rec.HasName = true
	}

	rec.Attributes = recordMap(ptr.AttributeNames(), ptr.Attribute, visit)
	rec.Constants = recordMap(ptr.ConstantNames(), ptr.Constant, visit)
	rec.Methods = recordMap(ptr.MethodNames(), ptr.Method, visit)

	return rec
}

func recordMap(names []string, lookup func(string) (vm.ObjectPointer, bool), visit func(vm.ObjectPointer) int) map[string]int {
	if len(names) == 0 {
		return nil
	}
	out := make(map[string]int, len(names))
	for _, name := range names {
		if ptr, ok := lookup(name); ok {
			out[name] = visit(ptr)
		}
	}
	return out
}
