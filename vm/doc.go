// Package vm implements the Ember virtual machine's per-process memory and
// messaging core.
//
// This package contains:
//   - the object model and lazily allocated object headers
//   - the block pool shared by every process's allocator
//   - the mailbox allocator, which copies object graphs between heaps
//   - per-process mailboxes and their message queues
//   - the work list used to seed collector root enumeration
package vm
