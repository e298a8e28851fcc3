package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

// ring is a Sequence that does not use a slice for storage.
type ring struct {
	xs, ys map[int]float64
	n      int
}

func (r ring) Len() int { return r.n }
func (r ring) At(i int) any {
	return [2]float64{r.xs[i], r.ys[i]}
}

func TestIsEmpty(t *testing.T) {
	var nilSlice []float64
	var nilPtr *[]float64
	tests := []struct {
		name   string
		coords any
		want   bool
	}{
		{"nil", nil, true},
		{"nil slice", nilSlice, true},
		{"nil pointer", nilPtr, true},
		{"zero length", []any{}, true},
		{"nested empty", []any{[]any{}, []any{}}, true},
		{"typed nested empty", [][]float64{{}, {}}, true},
		{"deep empty", [][][]float64{{{}}, {}}, true},
		{"array of empties", [2][]int{}, true},
		{"point", []any{0.0, 1.0}, false},
		{"nested point", [][]int{{0, 1}}, false},
		{"scalar", 3.5, false},
		{"zero scalar", 0, false},
		{"string", "abc", false},
		{"partially empty", []any{[]any{}, []any{[]any{1, 2}}}, false},
		{"json numbers", []any{json.Number("1"), json.Number("2")}, false},
		{"pointer to slice", &[]float64{1, 2}, false},
		{"empty sequence", ring{n: 0}, true},
		{"sequence", ring{xs: map[int]float64{0: 1}, ys: map[int]float64{0: 2}, n: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmpty(tt.coords))
		})
	}
}

func TestTuple(t *testing.T) {
	c, err := tuple([]any{1, float32(2.5), json.Number("3")})
	require.NoError(t, err)
	assert.Equal(t, geom.Coord{1, 2.5, 3}, c)

	c, err = tuple([]uint8{4, 5})
	require.NoError(t, err)
	assert.Equal(t, geom.Coord{4, 5}, c)

	c, err = tuple([]any{})
	require.NoError(t, err)
	assert.Nil(t, c)

	for _, bad := range []any{
		[]any{1},
		[]any{1, 2, 3, 4, 5},
		[]any{1, "x"},
		[]any{1, []any{2}},
		7,
	} {
		_, err := tuple(bad)
		assert.ErrorIs(t, err, ErrInvalidCoordinates, "%v", bad)
	}
}

func TestCloseRing(t *testing.T) {
	open := []geom.Coord{{0, 0}, {1, 0}, {1, 1}}
	closed := closeRing(open)
	require.Len(t, closed, 4)
	assert.Equal(t, geom.Coord{0, 0}, closed[3])

	// the appended coordinate is a copy
	closed[3][0] = 9
	assert.Equal(t, 0.0, closed[0][0])

	again := closeRing(closed[:3:3])
	assert.Len(t, again, 4)

	already := []geom.Coord{{0, 0}, {1, 0}, {0, 0}}
	assert.Len(t, closeRing(already), 3)
	assert.Empty(t, closeRing(nil))
}

func TestStrideTracker(t *testing.T) {
	var st strideTracker
	require.NoError(t, st.add(nil))
	require.NoError(t, st.add(geom.Coord{1, 2, 3}))
	assert.Equal(t, geom.XYZ, st.layout())
	assert.ErrorIs(t, st.add(geom.Coord{1, 2}), ErrInvalidCoordinates)

	var empty strideTracker
	assert.Equal(t, geom.XY, empty.layout())
	assert.Equal(t, geom.XYZM, layoutFor(4))
}
