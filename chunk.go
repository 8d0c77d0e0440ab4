package appendlist

import "math/bits"

// DefaultFirstChunkSize is the capacity of the first chunk of a list created
// with New or used as a zero value. Every following chunk doubles it.
const DefaultFirstChunkSize = 16

// layout maps global element indexes to chunks. first must be a power of two;
// zero stands for DefaultFirstChunkSize.
type layout struct {
	first int
}

func (lay layout) firstSize() int {
	if lay.first == 0 {
		return DefaultFirstChunkSize
	}

	return lay.first
}

// chunkSize is the capacity of chunk id.
func (lay layout) chunkSize(id int) int {
	return lay.firstSize() << id
}

// chunkStart is the global index of the first element of chunk id. Every chunk
// is as large as all chunks before it plus the first one, hence the subtraction.
func (lay layout) chunkStart(id int) int {
	return lay.chunkSize(id) - lay.firstSize()
}

// indexChunk returns the id of the chunk holding index.
func (lay layout) indexChunk(index int) int {
	first := lay.firstSize()
	return floorLog2(index+first) - floorLog2(first)
}

// floorLog2 must not be called with x <= 0.
func floorLog2(x int) int {
	return bits.Len(uint(x)) - 1
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
