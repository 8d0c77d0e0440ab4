package appendlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appendlist"
)

func listOf(n int) *appendlist.List[int] {
	list := appendlist.New[int]()
	for i := range n {
		list.Push(i)
	}

	return list
}

func TestVerifyLayoutAfterEveryPush(t *testing.T) {
	t.Parallel()

	list := appendlist.New[int]()
	for i := range 5_000 {
		list.Push(i)
		if err := list.VerifyLayout(); err != nil {
			t.Fatalf("after %d pushes: %v", i+1, err)
		}
	}
}

func TestVerifyLayoutDetectsCorruption(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tamper func(chunks [][]int, length *int) [][]int
		errors []string
	}{{
		name: "empty list with chunks",
		tamper: func(chunks [][]int, length *int) [][]int {
			*length = 0
			return chunks
		},
		errors: []string{"empty list holds 2 chunks"},
	}, {
		name: "length ahead of chunks",
		tamper: func(chunks [][]int, length *int) [][]int {
			*length++
			return chunks
		},
		errors: []string{"last chunk 1 holds 4 elements, length 21 implies 5"},
	}, {
		name: "extra chunk",
		tamper: func(chunks [][]int, _ *int) [][]int {
			return append(chunks, make([]int, 0, 64))
		},
		errors: []string{"length 20 needs 2 chunks but 3 are allocated"},
	}, {
		name: "partial middle chunk and small capacity",
		tamper: func(chunks [][]int, _ *int) [][]int {
			chunks[0] = chunks[0][:15]
			chunks[1] = append(make([]int, 0, 8), chunks[1]...)
			return chunks
		},
		errors: []string{
			"chunk 0 is not the last one but holds 15 of 16 elements",
			"chunk 1 has capacity 8, needs 32",
		},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			list := listOf(20)
			require.NoError(t, list.VerifyLayout())

			list.Tamper(tt.tamper)
			err := list.VerifyLayout()
			require.Error(t, err)
			for _, msg := range tt.errors {
				assert.ErrorContains(t, err, msg)
			}
		})
	}
}
