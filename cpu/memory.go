package cpu

// MEMORY_SIZE is the default size of memory, in bytes.
const MEMORY_SIZE = 256

// Memory is a fixed-size byte-addressable store.
type Memory struct {
	Data []uint8
}

// NewMemory creates a zeroed memory of size bytes.
func NewMemory(size uint) (mem Memory) {
	mem.Data = make([]uint8, size)
	return
}

// Size returns the number of addressable bytes.
func (mem *Memory) Size() int {
	return len(mem.Data)
}

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem.Data)
}

// Read returns the byte at address.
func (mem *Memory) Read(address int) (value uint8, err error) {
	if address < 0 || address >= len(mem.Data) {
		err = ErrMemoryBounds{Address: address, Size: len(mem.Data)}
		return
	}

	value = mem.Data[address]
	return
}

// Write stores value at address.
func (mem *Memory) Write(address int, value uint8) (err error) {
	if address < 0 || address >= len(mem.Data) {
		err = ErrMemoryBounds{Address: address, Size: len(mem.Data)}
		return
	}

	mem.Data[address] = value
	return
}
