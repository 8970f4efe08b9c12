package vm

import (
	"sync"
)

// ---------------------------------------------------------------------------
// Mailbox: the per-process inbox
// ---------------------------------------------------------------------------

// Mailbox is a process's inbox. It holds three queues of object pointers:
//
//   - external: messages copied in from other processes; guarded by the
//     write lock since any number of senders may append concurrently.
//   - internal: staging queue the owner drains external into in bulk, so
//     that consuming N messages costs one lock acquisition, not N.
//   - locals: messages the owning process sent to itself; never locked and
//     never copied, since only the owner touches them.
//
// Every pointer visible through external or internal is a private copy made
// by the mailbox allocator; a message in locals is the very object the owner
// already had, handed over rather than duplicated. Because of that, nothing
// reachable from a mailbox is ever shared between two process heaps.
//
// Exactly one execution context (the owning process) may call Receive,
// SendFromSelf and HasLocalPointers; that single-writer rule is a caller
// contract, not something the mailbox checks.
type Mailbox struct {
	// mu guards external and nothing else. It is held only to append one
	// freshly copied message or to bulk-move external into internal;
	// holding it any longer would serialize the self-send fast path
	// behind cross-process traffic.
	mu sync.Mutex

	external []ObjectPointer
	internal []ObjectPointer
	locals   []ObjectPointer

	allocator *MailboxAllocator
}

// NewMailbox creates an empty mailbox whose allocator draws blocks from the
// given global pool.
func NewMailbox(global *GlobalAllocator) *Mailbox {
	return &Mailbox{allocator: NewMailboxAllocator(global)}
}

// SendFromExternal delivers a message from another process. The object graph
// rooted at ptr is copied into the mailbox's own region and the copy is
// appended to the external queue. Safe to call from any number of processes
// concurrently. The copy happens under the write lock: the mailbox allocator
// is single-threaded, and every external sender mutates it.
//
// Exhaustion of the global block pool is returned to the sender, which
// decides whether to trigger a collection and retry or fail.
func (m *Mailbox) SendFromExternal(ptr ObjectPointer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied, err := m.allocator.CopyObject(ptr)
	if err != nil {
		return err
	}
	m.external = append(m.external, copied)
	return nil
}

// SendFromSelf delivers a message from the owning process to itself. The
// pointer is appended to locals as-is: no lock, no copy, ownership simply
// transfers from the sender's context to the mailbox.
//
// Only the owning process may call this, and never concurrently with its own
// Receive. Violating that is undefined behavior, not a checked error.
func (m *Mailbox) SendFromSelf(ptr ObjectPointer) {
	m.locals = append(m.locals, ptr)
}

// Receive returns the next message, or false when the mailbox is empty.
//
// Self-sent messages always drain first: they are continuations of the
// owner's own control flow and take precedence over inbound mail, even mail
// that arrived earlier in wall-clock time. After locals, messages come from
// internal; when internal runs dry the entire external queue is moved into
// it under the lock in one step, after which further Receive calls are
// lock-free until internal is empty again.
func (m *Mailbox) Receive() (ObjectPointer, bool) {
	if len(m.locals) > 0 {
		ptr := m.locals[0]
		m.locals[0] = nil
		m.locals = m.locals[1:]
		return ptr, true
	}

	if len(m.internal) == 0 {
		m.mu.Lock()
		m.internal = append(m.internal, m.external...)
		clear(m.external)
		m.external = m.external[:0]
		m.mu.Unlock()
	}

	if len(m.internal) == 0 {
		return nil, false
	}

	ptr := m.internal[0]
	m.internal[0] = nil
	m.internal = m.internal[1:]
	return ptr, true
}

// HasLocalPointers reports whether any self-sent messages are pending. No
// locking: only the owning process reads or writes locals.
func (m *Mailbox) HasLocalPointers() bool {
	return len(m.locals) > 0
}

// HasMessages reports whether any queue holds a message.
//
// Call this only while the owning process is suspended; if the owner could
// be receiving or self-sending concurrently, the result is a best-effort
// snapshot rather than a guarantee.
func (m *Mailbox) HasMessages() bool {
	if len(m.locals) > 0 || len(m.internal) > 0 {
		return true
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.external) > 0
}

// MailboxPointers returns a work list snapshot of every pointer currently in
// the internal and external queues, for collector root enumeration. The
// mailbox is not mutated.
func (m *Mailbox) MailboxPointers() *WorkList {
	pointers := NewWorkList()

	for _, ptr := range m.internal {
		pointers.Push(ptr)
	}

	m.mu.Lock()
	for _, ptr := range m.external {
		pointers.Push(ptr)
	}
	m.mu.Unlock()

	return pointers
}

// LocalPointers returns a work list snapshot of every pointer currently in
// the locals queue, for collector root enumeration. The mailbox is not
// mutated.
func (m *Mailbox) LocalPointers() *WorkList {
	pointers := NewWorkList()

	for _, ptr := range m.locals {
		pointers.Push(ptr)
	}

	return pointers
}

// Allocator returns the mailbox's allocator.
func (m *Mailbox) Allocator() *MailboxAllocator {
	return m.allocator
}

// teardown empties the queues and returns every block in the mailbox region
// to the global allocator. Called by the owning process when it terminates;
// all pointers ever handed out by this mailbox are invalid afterwards.
func (m *Mailbox) teardown() {
	m.mu.Lock()
	m.external = nil
	m.mu.Unlock()

	m.internal = nil
	m.locals = nil
	m.allocator.ReturnBlocks()
}
