package seqmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatioIdentical(t *testing.T) {
	r := Ratio([]string{"a", "b", "c"}, []string{"a", "b", "c"})
	assert.Equal(t, 1.0, r)
}

func TestRatioEmpty(t *testing.T) {
	r := Ratio([]string{}, []string{})
	assert.Equal(t, 1.0, r)
}

func TestRatioDisjoint(t *testing.T) {
	r := Ratio([]string{"a", "b"}, []string{"c", "d"})
	assert.Equal(t, 0.0, r)
}

func TestOpCodesReplace(t *testing.T) {
	a := []string{"the", " ", "price", " ", "is", " ", "50"}
	b := []string{"the", " ", "price", " ", "is", " ", "75"}

	codes := New(a, b).OpCodes()
	require.NotEmpty(t, codes)

	last := codes[len(codes)-1]
	assert.Equal(t, OpReplace, last.Tag)
	assert.Equal(t, "50", a[last.I1])
	assert.Equal(t, "75", b[last.J1])
}

func TestOpCodesRoundTrip(t *testing.T) {
	a := []string{"alpha", "beta", "gamma", "delta"}
	b := []string{"alpha", "gamma", "epsilon", "delta"}

	codes := New(a, b).OpCodes()

	var fromA, fromB []string
	for _, c := range codes {
		switch c.Tag {
		case OpEqual:
			fromA = append(fromA, a[c.I1:c.I2]...)
			fromB = append(fromB, b[c.J1:c.J2]...)
		case OpDelete, OpReplace:
			fromA = append(fromA, a[c.I1:c.I2]...)
			if c.Tag == OpReplace {
				fromB = append(fromB, b[c.J1:c.J2]...)
			}
		case OpInsert:
			fromB = append(fromB, b[c.J1:c.J2]...)
		}
	}
	assert.Equal(t, a, fromA)
	assert.Equal(t, b, fromB)
}

func TestBlocksSentinel(t *testing.T) {
	blocks := New([]string{"x"}, []string{"y"}).Blocks()
	last := blocks[len(blocks)-1]
	assert.Equal(t, Block{1, 1, 0}, last)
}
