package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlurKernelSize(t *testing.T) {
	assert.Equal(t, 1, BlurKernelSize(0))
	assert.Equal(t, 3, BlurKernelSize(1))
	assert.Equal(t, 41, BlurKernelSize(20))
	assert.Equal(t, 1, BlurKernelSize(-3))
}

func TestGaussianBlur_ZeroIntensityIsIdentity(t *testing.T) {
	src := newPatternMat(t, 17, 23)

	out, err := GaussianBlur(src, 0)
	require.NoError(t, err)
	own(t, out)

	assertSameImage(t, src, out)
}

func TestGaussianBlur_KeepsSize(t *testing.T) {
	src := newPatternMat(t, 40, 60)

	out, err := GaussianBlur(src, 5)
	require.NoError(t, err)
	own(t, out)

	assert.Equal(t, 40, out.Rows())
	assert.Equal(t, 60, out.Cols())
	assert.Equal(t, 3, out.Channels())
	assert.NotEqual(t, src.ToBytes(), out.ToBytes())
}

func TestGaussianBlur_RejectsOutOfRange(t *testing.T) {
	src := newPatternMat(t, 4, 4)

	_, err := GaussianBlur(src, MaxBlurIntensity+1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = GaussianBlur(src, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAdjustBrightness_Saturates(t *testing.T) {
	testCases := []struct {
		name  string
		value float64
		beta  int
		want  byte
	}{
		{name: "saturates high", value: 250, beta: 100, want: 255},
		{name: "saturates low", value: 30, beta: -100, want: 0},
		{name: "plain offset", value: 100, beta: 20, want: 120},
		{name: "zero offset", value: 77, beta: 0, want: 77},
		{name: "negative offset", value: 200, beta: -50, want: 150},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := newSolidMat(t, 3, 4, tc.value)

			out, err := AdjustBrightness(src, tc.beta)
			require.NoError(t, err)
			own(t, out)

			for _, v := range out.ToBytes() {
				require.Equal(t, tc.want, v)
			}
		})
	}
}

func TestAdjustContrast_Saturates(t *testing.T) {
	testCases := []struct {
		name  string
		value float64
		alpha float64
		want  byte
	}{
		{name: "saturates high", value: 100, alpha: 3.0, want: 255},
		{name: "halves", value: 100, alpha: 0.5, want: 50},
		{name: "minimum", value: 255, alpha: 0.2, want: 51},
		{name: "identity", value: 42, alpha: 1.0, want: 42},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := newSolidMat(t, 2, 2, tc.value)

			out, err := AdjustContrast(src, tc.alpha)
			require.NoError(t, err)
			own(t, out)

			for _, v := range out.ToBytes() {
				require.Equal(t, tc.want, v)
			}
		})
	}
}

func TestAdjust_RejectsOutOfDomain(t *testing.T) {
	src := newSolidMat(t, 2, 2, 10)

	_, err := AdjustBrightness(src, 101)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = AdjustContrast(src, 3.5)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = AdjustContrast(src, 0.1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAdjustments_Identity(t *testing.T) {
	adj := DefaultAdjustments()
	assert.True(t, adj.IsIdentity())

	src := newPatternMat(t, 9, 7)
	out, err := adj.Apply(src)
	require.NoError(t, err)
	own(t, out)

	assertSameImage(t, src, out)
}

func TestAdjustments_ContrastBeforeBrightness(t *testing.T) {
	src := newSolidMat(t, 2, 2, 100)

	adj := DefaultAdjustments()
	adj.Contrast = 2.0
	adj.Brightness = -50
	assert.False(t, adj.IsIdentity())

	out, err := adj.Apply(src)
	require.NoError(t, err)
	own(t, out)

	for _, v := range out.ToBytes() {
		require.Equal(t, byte(150), v)
	}
}

func TestAdjustments_ScaleLast(t *testing.T) {
	src := newPatternMat(t, 50, 100)

	adj := DefaultAdjustments()
	adj.BlurIntensity = 2
	adj.Scale = 0.5

	out, err := adj.Apply(src)
	require.NoError(t, err)
	own(t, out)

	assert.Equal(t, 25, out.Rows())
	assert.Equal(t, 50, out.Cols())
}

func TestAdjustments_RecomputeFromBase(t *testing.T) {
	src := newSolidMat(t, 2, 2, 100)

	adj := DefaultAdjustments()
	adj.Brightness = 10

	first, err := adj.Apply(src)
	require.NoError(t, err)
	own(t, first)
	second, err := adj.Apply(src)
	require.NoError(t, err)
	own(t, second)

	assert.Equal(t, first.ToBytes(), second.ToBytes())
	assert.Equal(t, byte(110), second.ToBytes()[0])
	assert.Equal(t, byte(100), src.ToBytes()[0])
}

func TestAdjustments_InvalidStageFails(t *testing.T) {
	src := newSolidMat(t, 2, 2, 100)

	adj := DefaultAdjustments()
	adj.Scale = 5

	_, err := adj.Apply(src)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
