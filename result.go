package evidencekit

import (
	"time"

	"github.com/gobeaver/evidencekit/filevalidator"
	"github.com/gobeaver/evidencekit/normalize"
)

// Stage names a pipeline step, used in logs
type Stage string

const (
	StageStart         Stage = "start"
	StageTypeValidated Stage = "type_validated"
	StageSizeChecked   Stage = "size_checked"
	StageNormalized    Stage = "normalized"
	StagePassThrough   Stage = "pass_through"
	StageDone          Stage = "done"
)

// ProgressFunc receives completion percentages in 0..100.
// Values are strictly increasing and end at 100 on success.
type ProgressFunc func(percent int)

// Result is a processed file ready to be stored
type Result struct {
	// ID correlates this run across logs
	ID string

	// Data is the output; for documents it is the input slice itself
	Data []byte

	Category filevalidator.Category

	// MIMEType of Data: the canonical image type, or the detected document type
	MIMEType string

	// Stats is set for images only
	Stats *normalize.Stats

	Checksum          string
	ChecksumAlgorithm ChecksumAlgorithm

	Duration time.Duration
}

// Size returns the output length in bytes
func (r *Result) Size() int64 {
	return int64(len(r.Data))
}

// Normalized reports whether Data was produced by the image normalizer
func (r *Result) Normalized() bool {
	return r.Stats != nil && !r.Stats.FastPath
}
