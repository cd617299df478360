package drawer

import (
	"time"

	"github.com/askiada/stagedmodel/pkg/stagedmodel/measure"
)

// Drawer is an interface that defines the methods for drawing a training plan.
type Drawer interface {
	// AddStage adds a stage to the drawing. A skipped stage is drawn greyed out.
	AddStage(name string, skipped bool) error
	// AddLink adds a link between two consecutive stages.
	AddLink(parentStageName, stageName string) error
	// Draw writes the drawing.
	Draw() error
	// SetTotalTime labels a stage with the time elapsed since startTime.
	SetTotalTime(stageName string, startTime time.Time) error
	// AddMeasure labels and colours the stages with their measured durations.
	AddMeasure(measure measure.Measure) error
}
