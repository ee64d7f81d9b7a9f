package zones

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitSet_InsertContainsRemove(t *testing.T) {
	b := newBitSet()
	assert.True(t, b.IsEmpty())

	b.Insert(3)
	b.Insert(130)
	assert.True(t, b.Contains(3))
	assert.True(t, b.Contains(130))
	assert.False(t, b.Contains(4))
	assert.Equal(t, 2, b.Len())
	assert.False(t, b.IsEmpty())

	b.Remove(3)
	assert.False(t, b.Contains(3))
	assert.Equal(t, 1, b.Len())
}

func TestBitSet_MembersAreAscending(t *testing.T) {
	b := newBitSet()
	for _, n := range []int{200, 1, 64, 0, 63} {
		b.Insert(n)
	}
	assert.Equal(t, []int{0, 1, 63, 64, 200}, b.Members())
}

func TestBitSet_CloneIsIndependent(t *testing.T) {
	b := newBitSet()
	b.Insert(5)
	clone := b.Clone()

	clone.Insert(9)
	assert.False(t, b.Contains(9))
	assert.True(t, clone.Contains(9))

	b.Remove(5)
	assert.True(t, clone.Contains(5))
}

func TestBitSet_RemoveOnUnallocatedWordIsNoop(t *testing.T) {
	b := newBitSet()
	b.Remove(500)
	assert.True(t, b.IsEmpty())
}
