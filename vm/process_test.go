package vm

import (
	"testing"
)

func TestProcessStates(t *testing.T) {
	proc := NewProcess(7, testAllocator(16, 0))

	if proc.ID() != 7 {
		t.Errorf("ID() = %d, want 7", proc.ID())
	}
	if proc.State() != ProcessRunning {
		t.Errorf("State() = %v, want running", proc.State())
	}

	proc.Suspend()
	if !proc.IsSuspended() {
		t.Error("process should be suspended")
	}

	proc.Resume()
	if proc.State() != ProcessRunning {
		t.Error("process should be running after Resume")
	}
}

func TestProcessSuspendAfterTerminate(t *testing.T) {
	proc := NewProcess(1, testAllocator(16, 0))

	proc.Terminate()
	proc.Suspend()
	if proc.State() != ProcessTerminated {
		t.Error("Suspend must not revive a terminated process")
	}
	proc.Resume()
	if proc.State() != ProcessTerminated {
		t.Error("Resume must not revive a terminated process")
	}
}

func TestProcessTerminateReturnsBlocks(t *testing.T) {
	global := testAllocator(2, 0)
	proc := NewProcess(1, global)

	for i := 0; i < 3; i++ {
		if err := proc.Mailbox().SendFromExternal(&Object{value: IntegerValue(int64(i))}); err != nil {
			t.Fatalf("SendFromExternal() failed: %v", err)
		}
	}
	if global.BlocksInUse() == 0 {
		t.Fatal("mailbox should have acquired blocks")
	}

	proc.Terminate()

	if proc.State() != ProcessTerminated {
		t.Errorf("State() = %v, want terminated", proc.State())
	}
	if global.BlocksInUse() != 0 {
		t.Errorf("BlocksInUse() = %d after teardown, want 0", global.BlocksInUse())
	}
	if proc.Mailbox().HasMessages() {
		t.Error("terminated process should have no pending messages")
	}

	// Idempotent.
	proc.Terminate()
}

func TestProcessStateNames(t *testing.T) {
	states := map[ProcessState]string{
		ProcessRunning:    "running",
		ProcessSuspended:  "suspended",
		ProcessTerminated: "terminated",
	}
	for state, want := range states {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", state, got, want)
		}
	}
}
