package appendlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appendlist"
)

func TestEmptyList(t *testing.T) {
	t.Parallel()

	list := appendlist.New[int]()
	assert.Equal(t, 0, list.Len())
	_, ok := list.Get(0)
	assert.False(t, ok)
	assert.Empty(t, list.Chunks())
	assert.NoError(t, list.VerifyLayout())

	var zero appendlist.List[int]
	assert.Equal(t, 0, zero.Len())
	_, ok = zero.Get(0)
	assert.False(t, ok)
	assert.Equal(t, appendlist.DefaultFirstChunkSize, zero.FirstChunkSize())

	zero.Push(7)
	assert.Equal(t, 7, *zero.At(0))
}

func TestNewSized(t *testing.T) {
	t.Parallel()

	list, err := appendlist.NewSized[string](4)
	require.NoError(t, err)
	assert.Equal(t, 4, list.FirstChunkSize())

	for _, size := range []int{-4, 0, 3, 12} {
		_, err := appendlist.NewSized[string](size)
		assert.ErrorIs(t, err, appendlist.ErrChunkSize, "size %d", size)
	}
}

func TestGetOutOfRange(t *testing.T) {
	t.Parallel()

	list := appendlist.From(1, 2, 3)
	for _, index := range []int{-1, 3, 100} {
		item, ok := list.Get(index)
		assert.False(t, ok, "index %d", index)
		assert.Nil(t, item)
	}
}

func TestAtPanicsOutOfRange(t *testing.T) {
	t.Parallel()

	list := appendlist.From("a", "b", "c")
	assert.Equal(t, "c", *list.At(2))
	assert.PanicsWithValue(t, "appendlist: index out of range [3] with length 3", func() {
		list.At(3)
	})
	assert.PanicsWithValue(t, "appendlist: index out of range [-1] with length 3", func() {
		list.At(-1)
	})
}

func TestPushReturnsStableReference(t *testing.T) {
	t.Parallel()

	list := appendlist.New[int]()
	first := list.Push(1)
	second := list.Push(2)

	for i := 3; i <= 10_000; i++ {
		list.Push(i)
	}

	assert.Equal(t, 1, *first)
	assert.Equal(t, 2, *second)
	assert.Same(t, first, list.At(0))
	assert.Same(t, second, list.At(1))
}

func TestChunkGrowth(t *testing.T) {
	t.Parallel()

	list := appendlist.New[int]()
	for i := range 16 {
		list.Push(i)
	}
	assert.Equal(t, []appendlist.ChunkInfo{{ID: 0, Start: 0, Capacity: 16, Len: 16}}, list.Chunks())

	list.Push(16)
	chunks := list.Chunks()
	require.Len(t, chunks, 2)
	assert.Equal(t, appendlist.ChunkInfo{ID: 1, Start: 16, Capacity: 32, Len: 1}, chunks[1])

	for i := 17; i < 48; i++ {
		list.Push(i)
	}
	chunks = list.Chunks()
	require.Len(t, chunks, 2)
	assert.Equal(t, 32, chunks[1].Len)

	list.Push(48)
	chunks = list.Chunks()
	require.Len(t, chunks, 3)
	assert.Equal(t, appendlist.ChunkInfo{ID: 2, Start: 48, Capacity: 64, Len: 1}, chunks[2])
	assert.NoError(t, list.VerifyLayout())
}

func TestChunkGrowthWithCustomFirstChunk(t *testing.T) {
	t.Parallel()

	list, err := appendlist.NewSized[int](2)
	require.NoError(t, err)
	list.Extend(0, 1, 2, 3, 4, 5, 6)

	assert.Equal(t, []appendlist.ChunkInfo{
		{ID: 0, Start: 0, Capacity: 2, Len: 2},
		{ID: 1, Start: 2, Capacity: 4, Len: 4},
		{ID: 2, Start: 6, Capacity: 8, Len: 1},
	}, list.Chunks())

	for i := range 7 {
		assert.Equal(t, i, *list.At(i))
	}
}

func TestExtend(t *testing.T) {
	t.Parallel()

	list := appendlist.New[string]()
	list.Extend()
	assert.Equal(t, 0, list.Len())

	list.Extend("x", "y")
	list.Extend("z")
	assert.Equal(t, []string{"x", "y", "z"}, list.Clone())
}

func TestThousandItemList(t *testing.T) {
	t.Parallel()

	testBigList(t, 1_000)
}

func TestMillionItemList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping million item list in short mode")
	}
	t.Parallel()

	list := testBigList(t, 1_000_000)
	// index 999999 falls into chunk 15, which starts at 16<<15 - 16
	assert.Len(t, list.Chunks(), 16)
}

func testBigList(t *testing.T, size int) *appendlist.List[int] {
	t.Helper()

	list := appendlist.New[int]()
	values := make([]int, 0, size)
	refs := make([]*int, 0, size)

	for i := range size {
		if list.Len() != i {
			t.Fatalf("expected length %d before push but got %d", i, list.Len())
		}

		ref := list.Push(i)
		values = append(values, *list.At(i))
		refs = append(refs, ref)

		if list.Len() != i+1 {
			t.Fatalf("expected length %d after push but got %d", i+1, list.Len())
		}
	}

	for i := range size {
		item, ok := list.Get(i)
		if !ok {
			t.Fatalf("expected index %d to be present", i)
		}
		if *item != values[i] || *refs[i] != values[i] {
			t.Fatalf("index %d: expected %d but got %d (pushed reference reads %d)", i, values[i], *item, *refs[i])
		}
		if item != refs[i] {
			t.Fatalf("index %d: reference returned by Push no longer points at the element", i)
		}
	}

	_, ok := list.Get(size)
	assert.False(t, ok)
	assert.NoError(t, list.VerifyLayout())

	return list
}
