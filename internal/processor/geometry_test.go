package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestRotate_Dimensions(t *testing.T) {
	src := newPatternMat(t, 50, 100)

	for _, angle := range []int{90, 270} {
		out, err := Rotate(src, angle)
		require.NoError(t, err)
		own(t, out)
		assert.Equal(t, 100, out.Rows(), "angle %d", angle)
		assert.Equal(t, 50, out.Cols(), "angle %d", angle)
	}

	out, err := Rotate(src, 180)
	require.NoError(t, err)
	own(t, out)
	assert.Equal(t, 50, out.Rows())
	assert.Equal(t, 100, out.Cols())
}

func TestRotate_ClockwiseCorner(t *testing.T) {
	src := newPatternMat(t, 3, 4)

	out, err := Rotate(src, 90)
	require.NoError(t, err)
	own(t, out)

	// The bottom-left pixel becomes the top-left one after a clockwise turn.
	assert.Equal(t, src.GetVecbAt(2, 0), out.GetVecbAt(0, 0))
}

func TestRotate_RoundTrips(t *testing.T) {
	src := newPatternMat(t, 6, 11)

	r90, err := Rotate(src, 90)
	require.NoError(t, err)
	own(t, r90)
	back, err := Rotate(r90, 270)
	require.NoError(t, err)
	own(t, back)
	assertSameImage(t, src, back)

	img := src.Clone()
	for i := 0; i < 4; i++ {
		next, err := Rotate(img, 90)
		require.NoError(t, err)
		img.Close()
		img = next
	}
	own(t, img)
	assertSameImage(t, src, img)
}

func TestRotate_InvalidAngle(t *testing.T) {
	src := newPatternMat(t, 4, 4)

	for _, angle := range []int{0, 45, -90, 360} {
		_, err := Rotate(src, angle)
		assert.ErrorIs(t, err, ErrInvalidArgument, "angle %d", angle)
	}
}

func TestFlip_Involution(t *testing.T) {
	src := newPatternMat(t, 7, 13)

	for _, mode := range []string{FlipHorizontal, FlipVertical} {
		once, err := Flip(src, mode)
		require.NoError(t, err)
		own(t, once)
		assert.NotEqual(t, src.ToBytes(), once.ToBytes(), mode)

		twice, err := Flip(once, mode)
		require.NoError(t, err)
		own(t, twice)
		assertSameImage(t, src, twice)
	}
}

func TestFlip_Axes(t *testing.T) {
	src := newPatternMat(t, 3, 5)

	h, err := Flip(src, FlipHorizontal)
	require.NoError(t, err)
	own(t, h)
	assert.Equal(t, src.GetVecbAt(0, 4), h.GetVecbAt(0, 0))

	v, err := Flip(src, FlipVertical)
	require.NoError(t, err)
	own(t, v)
	assert.Equal(t, src.GetVecbAt(2, 0), v.GetVecbAt(0, 0))
}

func TestFlip_InvalidMode(t *testing.T) {
	src := newPatternMat(t, 2, 2)

	_, err := Flip(src, "diagonal")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestScaledSize(t *testing.T) {
	testCases := []struct {
		w, h  int
		scale float64
		want  [2]int
	}{
		{100, 50, 1.0, [2]int{100, 50}},
		{100, 50, 0.5, [2]int{50, 25}},
		{100, 50, 2.0, [2]int{200, 100}},
		{3, 3, 0.1, [2]int{1, 1}},
		{15, 25, 0.1, [2]int{2, 3}},
	}

	for _, tc := range testCases {
		got := ScaledSize(tc.w, tc.h, tc.scale)
		assert.Equal(t, tc.want, [2]int{got.X, got.Y}, "%dx%d * %.1f", tc.w, tc.h, tc.scale)
	}
}

func TestResizeScale(t *testing.T) {
	src := newPatternMat(t, 50, 100)

	same, err := ResizeScale(src, 1.0)
	require.NoError(t, err)
	own(t, same)
	assert.Equal(t, 50, same.Rows())
	assert.Equal(t, 100, same.Cols())

	down, err := ResizeScale(src, 0.1)
	require.NoError(t, err)
	own(t, down)
	assert.Equal(t, 5, down.Rows())
	assert.Equal(t, 10, down.Cols())
	assert.Equal(t, 3, down.Channels())

	up, err := ResizeScale(src, 1.5)
	require.NoError(t, err)
	own(t, up)
	assert.Equal(t, 75, up.Rows())
	assert.Equal(t, 150, up.Cols())
}

func TestResizeScale_Invalid(t *testing.T) {
	src := newPatternMat(t, 4, 4)

	_, err := ResizeScale(src, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ResizeScale(src, 2.5)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ResizeScale(own(t, gocv.NewMat()), 1.0)
	assert.ErrorIs(t, err, ErrEmptyImage)
}
