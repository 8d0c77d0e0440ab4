package appendlist

// Export internal symbols for layout tests in appendlist_test.
var (
	FloorLog2    = floorLog2
	IsPowerOfTwo = isPowerOfTwo
)

func ChunkSize(first, id int) int     { return layout{first: first}.chunkSize(id) }
func ChunkStart(first, id int) int    { return layout{first: first}.chunkStart(id) }
func IndexChunk(first, index int) int { return layout{first: first}.indexChunk(index) }

func (l *List[T]) VerifyLayout() error { return l.verifyLayout() }

// Tamper lets a test break the list's internal consistency on purpose.
func (l *List[T]) Tamper(fn func(chunks [][]T, length *int) [][]T) {
	l.chunks = fn(l.chunks, &l.length)
}
