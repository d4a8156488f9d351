package normalize

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_MonotonicAndDeduplicated(t *testing.T) {
	rec := &recorder{}
	p := newProgress(rec.report)

	for _, v := range []int{5, 5, 3, 35, -10, 50, 150, 100} {
		p.report(v)
	}

	assert.Equal(t, []int{5, 35, 50, 100}, rec.values)
}

func TestProgress_NilCallback(t *testing.T) {
	assert.NotPanics(t, func() { newProgress(nil).report(50) })
}

func TestEncodeStep(t *testing.T) {
	assert.Equal(t, ProgressEncoded, encodeStep(0, 1))
	assert.Equal(t, ProgressEncoded, encodeStep(0, 0))
	assert.Equal(t, 77, encodeStep(0, 2))
	assert.Equal(t, ProgressEncoded, encodeStep(1, 2))
}

func TestCtxReader(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &ctxReader{ctx: ctx, r: bytes.NewReader([]byte("abcdef"))}

	buf := make([]byte, 3)
	n, err := r.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	cancel()
	n, err = r.Read(buf)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCtxWriter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	w := &ctxWriter{ctx: ctx, w: &out}

	_, err := io.WriteString(w, "ok")
	assert.NoError(t, err)

	cancel()
	_, err = io.WriteString(w, "late")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "ok", out.String())
}
