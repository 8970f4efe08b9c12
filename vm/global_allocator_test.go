package vm

import (
	"errors"
	"sync"
	"testing"

	"github.com/chazu/ember/config"
)

func testAllocator(blockSize, maxBlocks int) *GlobalAllocator {
	return NewGlobalAllocator(&config.Config{
		Memory: config.Memory{BlockSize: blockSize, MaxBlocks: maxBlocks},
	})
}

func TestRequestBlock(t *testing.T) {
	global := testAllocator(8, 0)

	block, err := global.RequestBlock()
	if err != nil {
		t.Fatalf("RequestBlock() failed: %v", err)
	}
	if block.Capacity() != 8 {
		t.Errorf("Capacity() = %d, want 8", block.Capacity())
	}
	if global.BlocksInUse() != 1 {
		t.Errorf("BlocksInUse() = %d, want 1", global.BlocksInUse())
	}
}

func TestRequestBlockExhaustion(t *testing.T) {
	global := testAllocator(8, 2)

	for i := 0; i < 2; i++ {
		if _, err := global.RequestBlock(); err != nil {
			t.Fatalf("RequestBlock() %d failed: %v", i, err)
		}
	}

	_, err := global.RequestBlock()
	if !errors.Is(err, ErrBlocksExhausted) {
		t.Errorf("RequestBlock() error = %v, want ErrBlocksExhausted", err)
	}
}

func TestReturnBlocksReuse(t *testing.T) {
	global := testAllocator(4, 1)

	block, err := global.RequestBlock()
	if err != nil {
		t.Fatalf("RequestBlock() failed: %v", err)
	}
	if _, ok := block.Allocate(); !ok {
		t.Fatal("Allocate() failed on fresh block")
	}

	global.ReturnBlocks([]*Block{block})
	if global.FreeBlocks() != 1 {
		t.Fatalf("FreeBlocks() = %d, want 1", global.FreeBlocks())
	}

	// The limit is reached but the pooled block satisfies the request.
	again, err := global.RequestBlock()
	if err != nil {
		t.Fatalf("RequestBlock() after return failed: %v", err)
	}
	if again.InUse() != 0 {
		t.Errorf("reused block InUse() = %d, want 0 after reset", again.InUse())
	}
}

func TestRequestBlockConcurrent(t *testing.T) {
	global := testAllocator(16, 0)

	var wg sync.WaitGroup
	blocks := make([]*Block, 32)

	for i := range blocks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			block, err := global.RequestBlock()
			if err != nil {
				t.Errorf("RequestBlock() failed: %v", err)
				return
			}
			blocks[i] = block
		}(i)
	}
	wg.Wait()

	seen := make(map[*Block]bool)
	for _, block := range blocks {
		if block == nil {
			continue
		}
		if seen[block] {
			t.Fatal("same block handed out twice")
		}
		seen[block] = true
	}
	if global.BlocksInUse() != 32 {
		t.Errorf("BlocksInUse() = %d, want 32", global.BlocksInUse())
	}
}

func TestBlockBumpAllocation(t *testing.T) {
	block := newBlock(2)

	first, ok := block.Allocate()
	if !ok || first == nil {
		t.Fatal("first Allocate() failed")
	}
	second, ok := block.Allocate()
	if !ok || second == first {
		t.Fatal("second Allocate() failed or aliased the first")
	}
	if !block.IsFull() {
		t.Error("block should be full")
	}
	if _, ok := block.Allocate(); ok {
		t.Error("Allocate() on full block should fail")
	}
}
