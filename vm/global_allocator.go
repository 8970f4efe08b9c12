package vm

import (
	"errors"
	"sync"

	"github.com/chazu/ember/config"
)

// ---------------------------------------------------------------------------
// GlobalAllocator: the shared block pool
// ---------------------------------------------------------------------------

// ErrBlocksExhausted is returned by RequestBlock when the configured block
// limit has been reached. The caller decides whether to run a collection and
// retry, or to fail the requesting process; the allocator never retries on
// its own.
var ErrBlocksExhausted = errors.New("global allocator: block limit reached")

// GlobalAllocator is the process-wide pool of memory blocks. A single
// instance is shared by reference across every mailbox allocator and outlives
// every process. All methods are safe for concurrent use.
type GlobalAllocator struct {
	mu        sync.Mutex
	free      []*Block
	blockSize int
	maxBlocks int // 0 means unlimited
	allocated int // blocks created and not yet back in free
}

// NewGlobalAllocator creates a block pool sized per the given configuration.
func NewGlobalAllocator(cfg *config.Config) *GlobalAllocator {
	blockSize := cfg.Memory.BlockSize
	if blockSize <= 0 {
		blockSize = config.DefaultBlockSize
	}
	return &GlobalAllocator{
		blockSize: blockSize,
		maxBlocks: cfg.Memory.MaxBlocks,
	}
}

// RequestBlock hands out a block, reusing a pooled one when available. It
// returns ErrBlocksExhausted when the configured limit has been reached.
func (g *GlobalAllocator) RequestBlock() (*Block, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if n := len(g.free); n > 0 {
		block := g.free[n-1]
		g.free[n-1] = nil
		g.free = g.free[:n-1]
		return block, nil
	}

	if g.maxBlocks > 0 && g.allocated >= g.maxBlocks {
		return nil, ErrBlocksExhausted
	}

	g.allocated++
	return newBlock(g.blockSize), nil
}

// ReturnBlocks puts blocks back into the pool. Each block is reset before it
// becomes available again, so no references into the previous owner's heap
// survive the handover.
func (g *GlobalAllocator) ReturnBlocks(blocks []*Block) {
	if len(blocks) == 0 {
		return
	}
	for _, block := range blocks {
		block.reset()
	}

	g.mu.Lock()
	g.free = append(g.free, blocks...)
	g.mu.Unlock()
}

// BlockSize returns the number of object slots per block.
func (g *GlobalAllocator) BlockSize() int {
	return g.blockSize
}

// BlocksInUse returns the number of blocks currently held by allocators.
func (g *GlobalAllocator) BlocksInUse() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.allocated - len(g.free)
}

// FreeBlocks returns the number of blocks sitting in the pool.
func (g *GlobalAllocator) FreeBlocks() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.free)
}
