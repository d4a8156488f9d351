package evidencekit

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchItem is one file of a batch
type BatchItem struct {
	Data         []byte
	DeclaredType string
	OnProgress   ProgressFunc
}

// BatchResult pairs an item index with its outcome; exactly one of Result and Err is set
type BatchResult struct {
	Index  int
	Result *Result
	Err    error
}

// ProcessBatch processes items independently with at most Config.BatchConcurrency running at once.
// One item's failure does not affect the others. Results are in item order.
func (p *Processor) ProcessBatch(ctx context.Context, items []BatchItem) []BatchResult {
	results := make([]BatchResult, len(items))

	var g errgroup.Group
	g.SetLimit(p.cfg.BatchConcurrency)
	for i, item := range items {
		g.Go(func() error {
			res, err := p.Process(ctx, item.Data, item.DeclaredType, item.OnProgress)
			results[i] = BatchResult{Index: i, Result: res}
			if err != nil {
				results[i].Err = err
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Failed returns the results that carry an error
func Failed(results []BatchResult) []BatchResult {
	var failed []BatchResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
