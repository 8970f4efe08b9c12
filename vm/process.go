package vm

import (
	"sync/atomic"
)

// ---------------------------------------------------------------------------
// Process: the owning schedulable unit
// ---------------------------------------------------------------------------

// ProcessState represents the run state of a process.
type ProcessState int32

const (
	ProcessRunning ProcessState = iota
	ProcessSuspended
	ProcessTerminated
)

// String returns the state name, for diagnostics.
func (s ProcessState) String() string {
	switch s {
	case ProcessRunning:
		return "running"
	case ProcessSuspended:
		return "suspended"
	case ProcessTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Process is an independently schedulable unit with a private heap region
// and exactly one mailbox. The scheduler owning the process is the only
// context that runs its code; everything this package needs from it is the
// run state, which gates when Mailbox.HasMessages is trustworthy.
type Process struct {
	id      uint64
	state   atomic.Int32 // ProcessState
	mailbox *Mailbox
}

// NewProcess creates a process in the running state with an empty mailbox
// drawing from the given global allocator.
func NewProcess(id uint64, global *GlobalAllocator) *Process {
	p := &Process{
		id:      id,
		mailbox: NewMailbox(global),
	}
	p.state.Store(int32(ProcessRunning))
	return p
}

// ID returns the process identifier assigned by the scheduler.
func (p *Process) ID() uint64 {
	return p.id
}

// Mailbox returns the process's mailbox.
func (p *Process) Mailbox() *Mailbox {
	return p.mailbox
}

// State returns the current run state.
func (p *Process) State() ProcessState {
	return ProcessState(p.state.Load())
}

// IsSuspended reports whether the process is suspended.
func (p *Process) IsSuspended() bool {
	return p.State() == ProcessSuspended
}

// Suspend moves a running process to the suspended state. Suspending a
// terminated process has no effect.
func (p *Process) Suspend() {
	p.state.CompareAndSwap(int32(ProcessRunning), int32(ProcessSuspended))
}

// Resume moves a suspended process back to running. Resuming a terminated
// process has no effect.
func (p *Process) Resume() {
	p.state.CompareAndSwap(int32(ProcessSuspended), int32(ProcessRunning))
}

// Terminate tears the process down: the mailbox queues are dropped and every
// memory block the process acquired goes back to the global allocator.
// Idempotent. Any pointer into the process's region is invalid afterwards.
func (p *Process) Terminate() {
	if ProcessState(p.state.Swap(int32(ProcessTerminated))) == ProcessTerminated {
		return
	}
	p.mailbox.teardown()
}
