package measure

import (
	"time"

	"github.com/askiada/stagedmodel/pkg/stagedmodel/model"
)

type trainMeasure struct {
	Measure
}

func (tm *trainMeasure) New() error {
	return nil
}

// PrepareStage registers every stage that is going to run.
func (tm *trainMeasure) PrepareStage(_, stage *model.StageInfo) error {
	if !stage.Skipped {
		tm.AddMetric(stage.Name)
	}

	return nil
}

func (tm *trainMeasure) OnStageDone(stage *model.StageInfo, actionDuration, checkpointDuration time.Duration) error {
	mt := tm.AddMetric(stage.Name)
	mt.AddDuration(actionDuration)
	mt.AddCheckpointDuration(checkpointDuration)

	return nil
}

func (tm *trainMeasure) Finish() error {
	return nil
}

// TrainMeasure records how long each stage action and its checkpoint take.
func TrainMeasure(measure Measure) model.TrainHook {
	return &trainMeasure{measure}
}
