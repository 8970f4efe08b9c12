package vm

// ---------------------------------------------------------------------------
// Block: a fixed-size run of object slots
// ---------------------------------------------------------------------------

// Block is a fixed-capacity run of object slots handed out by the global
// allocator. Allocation inside a block is a bump of the used counter; a block
// is never compacted, only reset wholesale when it returns to the pool.
type Block struct {
	objects []Object
	used    int
}

func newBlock(size int) *Block {
	return &Block{objects: make([]Object, size)}
}

// Allocate returns a pointer to the next unused slot, or false when the
// block is full.
func (b *Block) Allocate() (ObjectPointer, bool) {
	if b.used == len(b.objects) {
		return nil, false
	}
	ptr := &b.objects[b.used]
	b.used++
	return ptr, true
}

// IsFull reports whether every slot in the block is in use.
func (b *Block) IsFull() bool {
	return b.used == len(b.objects)
}

// InUse returns the number of allocated slots.
func (b *Block) InUse() int {
	return b.used
}

// Capacity returns the total number of slots in the block.
func (b *Block) Capacity() int {
	return len(b.objects)
}

// reset clears every used slot so the block can be handed to a new owner
// without leaking references into the previous owner's object graph.
func (b *Block) reset() {
	clear(b.objects[:b.used])
	b.used = 0
}
