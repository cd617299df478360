// Package progress shows a terminal progress bar over the stages of a training run.
package progress

import (
	"io"
	"time"

	"github.com/cheggaaa/pb/v3"

	"github.com/askiada/stagedmodel/pkg/stagedmodel/model"
)

const (
	stageKey = "stage"

	barTemplate pb.ProgressBarTemplate = `{{string . "stage"}} {{counters . }} {{bar . }} {{percent . }}`
)

// Bar is a train hook rendering one progress bar step per completed stage. The bar is redrawn only when a stage
// completes, never from a background goroutine.
type Bar struct {
	bar   *pb.ProgressBar
	total int64
}

// NewBar creates a progress bar writing to w.
func NewBar(w io.Writer) *Bar {
	bar := barTemplate.New(0)
	bar.SetWriter(w)
	bar.Set(pb.Static, true)

	return &Bar{bar: bar}
}

func (b *Bar) New() error {
	return nil
}

// PrepareStage counts the stages that are going to run.
func (b *Bar) PrepareStage(_, stage *model.StageInfo) error {
	if stage.Position == 0 {
		b.total = 0
		b.bar.SetCurrent(0)
	}

	if !stage.Skipped {
		b.total++
		b.bar.SetTotal(b.total)
	}

	return nil
}

func (b *Bar) OnStageDone(stage *model.StageInfo, _, _ time.Duration) error {
	b.bar.Set(stageKey, stage.Name)
	b.bar.Increment()
	b.bar.Write()

	return nil
}

func (b *Bar) Finish() error {
	b.bar.Finish()

	return b.bar.Err()
}

var _ model.TrainHook = (*Bar)(nil)
