package output

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

// Progress renders a terminal progress bar over the common-file comparison
// phase. The bar is created lazily on the first update because the total is
// only known once both scans have completed.
type Progress struct {
	writer io.Writer
	bar    *pb.ProgressBar
}

// NewProgress creates a progress renderer writing to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{writer: w}
}

// Update advances the bar. It matches the engine's progress callback shape.
func (p *Progress) Update(done, total int) {
	if p.bar == nil {
		p.bar = pb.New(total)
		if p.writer != nil {
			p.bar.SetWriter(p.writer)
		}
		p.bar.Start()
	}
	p.bar.SetCurrent(int64(done))
}

// Finish stops the bar. Safe to call when no update ever arrived.
func (p *Progress) Finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}
