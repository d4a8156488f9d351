package evidencekit

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	pdfHeader  = []byte("%PDF-1.7\n%\xE2\xE3\xCF\xD3\n")
	waveHeader = []byte{'R', 'I', 'F', 'F', 0x24, 0, 0, 0, 'W', 'A', 'V', 'E', 'f', 'm', 't', ' '}
)

func testImage(w, h int) *image.NRGBA {
	rng := rand.New(rand.NewSource(7))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{uint8(rng.Intn(256)), uint8(x), uint8(y), 200})
		}
	}
	return img
}

func pngData(t testing.TB, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(w, h)))
	return buf.Bytes()
}

func jpegData(t testing.TB, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(w, h), &jpeg.Options{Quality: 85}))
	return buf.Bytes()
}

// pdfOfSize returns a buffer of exactly n bytes starting with a PDF header
func pdfOfSize(n int64) []byte {
	data := make([]byte, n)
	copy(data, pdfHeader)
	return data
}

type progressRecorder struct {
	values []int
}

func (r *progressRecorder) report(p int) { r.values = append(r.values, p) }

func (r *progressRecorder) last() int {
	if len(r.values) == 0 {
		return -1
	}
	return r.values[len(r.values)-1]
}

func requireMonotonic(t *testing.T, values []int) {
	t.Helper()
	for i := 1; i < len(values); i++ {
		require.Greater(t, values[i], values[i-1], "progress %v is not strictly increasing", values)
	}
}

