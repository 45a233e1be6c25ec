package download

import (
	"fmt"
	"io"
	"strings"
)

// barWidth is the maximum number of '#' characters in the bar.
const barWidth = 70

// progressBar renders a single updating line: a dash-padded bar of '#'
// characters plus a right-aligned percentage. A nil bar is a no-op.
type progressBar struct {
	w     io.Writer
	total int64
}

func newProgressBar(w io.Writer, total int64) *progressBar {
	return &progressBar{w: w, total: total}
}

// Draw redraws the bar for done bytes out of the total.
func (b *progressBar) Draw(done int64) {
	if b == nil {
		return
	}
	hashes := int(barWidth * done / b.total)
	if hashes > barWidth {
		hashes = barWidth
	}
	percent := 100 * float64(done) / float64(b.total)
	bar := strings.Repeat("#", hashes) + strings.Repeat("-", barWidth-hashes)
	fmt.Fprintf(b.w, "\r%s %5.1f%%", bar, percent)
}

// Finish draws the final state and terminates the line.
func (b *progressBar) Finish(done int64) {
	if b == nil {
		return
	}
	b.Draw(done)
	fmt.Fprintln(b.w)
}
