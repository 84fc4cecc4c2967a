package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToA1(t *testing.T) {
	cases := []struct {
		row, col int
		want     string
	}{
		{0, 0, "A1"},
		{1, 1, "B2"},
		{9, 25, "Z10"},
		{0, 26, "AA1"},
		{4, 27, "AB5"},
		{0, 51, "AZ1"},
		{0, 52, "BA1"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ToA1(c.row, c.col))
	}
}

func TestFromA1(t *testing.T) {
	for _, pos := range []string{"A1", "B2", "Z10", "AA1", "AB5", "c3"} {
		row, col, err := FromA1(pos)
		assert.NoError(t, err)
		rt := ToA1(row, col)
		r2, c2, err := FromA1(rt)
		assert.NoError(t, err)
		assert.Equal(t, row, r2)
		assert.Equal(t, col, c2)
	}
}

func TestFromA1Rejects(t *testing.T) {
	for _, pos := range []string{"", "A", "7", "A0", "1A", "B-2", "A1x"} {
		_, _, err := FromA1(pos)
		assert.Error(t, err, "expected %q to be rejected", pos)
	}
}

func TestCoordList(t *testing.T) {
	assert.Equal(t, "", CoordList(nil))
	assert.Equal(t, "A1, B1, C2",
		CoordList([]Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 2}}))
}
