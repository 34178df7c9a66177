// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/askeksa/shrinkler-go

package shrinkler

import "github.com/schollz/progressbar/v3"

// Progress receives a pull-based stream of begin/update/end calls as the
// parser sweeps across the input, one update per position reached. Pack
// calls this once per iteration in PackParams.
type Progress interface {
	Begin(total int)
	Update(pos int)
	End()
}

// NoProgress discards every call; it is the default when PackParams.Progress
// is nil.
type NoProgress struct{}

func (NoProgress) Begin(int)  {}
func (NoProgress) Update(int) {}
func (NoProgress) End()       {}

// BarProgress renders a terminal progress bar via progressbar.
type BarProgress struct {
	description string
	bar         *progressbar.ProgressBar
}

// NewBarProgress returns a Progress that draws a bar labeled with description.
func NewBarProgress(description string) *BarProgress {
	return &BarProgress{description: description}
}

func (b *BarProgress) Begin(total int) {
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(b.description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (b *BarProgress) Update(pos int) {
	if b.bar != nil {
		b.bar.Set(pos)
	}
}

func (b *BarProgress) End() {
	if b.bar != nil {
		b.bar.Finish()
	}
}
