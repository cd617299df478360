package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/stagedmodel/pkg/stagedmodel/measure"
	"github.com/askiada/stagedmodel/pkg/stagedmodel/model"
)

type trainDrawer struct {
	Drawer
	m         measure.Measure
	startTime time.Time
	lastStage string
}

func (td *trainDrawer) New() error {
	err := td.AddStage(model.StartStage.Name, false)
	if err != nil {
		return errors.Wrap(err, "unable to add start stage to drawer")
	}

	err = td.AddStage(model.EndStage.Name, false)
	if err != nil {
		return errors.Wrap(err, "unable to add end stage to drawer")
	}

	return nil
}

func (td *trainDrawer) PrepareStage(parent, stage *model.StageInfo) error {
	if parent == model.StartStage {
		td.startTime = time.Now()
	}

	err := td.AddStage(stage.Name, stage.Skipped)
	if err != nil {
		return err
	}

	err = td.AddLink(parent.Name, stage.Name)
	if err != nil {
		return err
	}

	td.lastStage = stage.Name

	return nil
}

func (td *trainDrawer) OnStageDone(*model.StageInfo, time.Duration, time.Duration) error {
	return nil
}

func (td *trainDrawer) Finish() error {
	parent := td.lastStage
	if parent == "" {
		parent = model.StartStage.Name
	}

	err := td.AddLink(parent, model.EndStage.Name)
	if err != nil {
		return err
	}

	err = td.SetTotalTime(model.EndStage.Name, td.startTime)
	if err != nil {
		return errors.Wrap(err, "unable to set total time")
	}

	if td.m != nil {
		err = td.AddMeasure(td.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err = td.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw training plan")
	}

	return nil
}

// TrainDrawer draws the training plan once a run is finished. When msr is not nil, the stages are labelled with the
// durations it collected, so the measure hook must be registered as well.
func TrainDrawer(drawer Drawer, msr measure.Measure) model.TrainHook {
	return &trainDrawer{Drawer: drawer, m: msr, startTime: time.Now()}
}
