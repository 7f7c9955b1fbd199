package renderer

import "sync/atomic"

// ProgressFunc receives the completed fraction of a render in [0, 1]. It is
// called once per whole-percent step, from worker goroutines, possibly
// concurrently and slightly out of order.
type ProgressFunc func(fraction float64)

// Progress counts completed pixels across all workers
type Progress struct {
	completed atomic.Int64
	total     int64
	sink      ProgressFunc
}

// NewProgress creates a counter for total pixels reporting to sink, which may be nil
func NewProgress(total int, sink ProgressFunc) *Progress {
	return &Progress{total: int64(total), sink: sink}
}

// PixelDone records one finished pixel and notifies the sink when the
// completed percentage crosses a whole number
func (p *Progress) PixelDone() {
	done := p.completed.Add(1)
	if p.sink == nil || done*100/p.total == (done-1)*100/p.total {
		return
	}
	p.sink(float64(done) / float64(p.total))
}

// Completed returns the number of finished pixels
func (p *Progress) Completed() int {
	return int(p.completed.Load())
}

// Fraction returns the finished share of the render
func (p *Progress) Fraction() float64 {
	if p.total == 0 {
		return 1
	}
	return float64(p.completed.Load()) / float64(p.total)
}
