package normalize

// ProgressFunc receives completion percentages in 0..100
type ProgressFunc func(percent int)

// Progress checkpoints
const (
	ProgressStart    = 5
	ProgressDecoded  = 35
	ProgressResized  = 55
	ProgressEncoding = 60
	ProgressEncoded  = 95
	ProgressDone     = 100
)

// progress forwards only strictly increasing values, clamped to 0..100
type progress struct {
	fn      ProgressFunc
	last    int
	started bool
}

func newProgress(fn ProgressFunc) *progress {
	return &progress{fn: fn}
}

func (p *progress) report(percent int) {
	if p.fn == nil {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if p.started && percent <= p.last {
		return
	}
	p.started = true
	p.last = percent
	p.fn(percent)
}

// encodeStep maps attempt i of n (0-based) into the encoding band
func encodeStep(i, n int) int {
	if n <= 0 {
		return ProgressEncoded
	}
	return ProgressEncoding + (ProgressEncoded-ProgressEncoding)*(i+1)/n
}
