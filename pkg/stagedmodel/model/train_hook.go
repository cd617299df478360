package model

import "time"

// TrainHook observes a staged training run.
type TrainHook interface {
	// New initialises the hook. It runs once, when the staged model is created.
	New() error
	// PrepareStage runs for every declared stage, in order, before the first stage action.
	// parent is the previous declared stage, or StartStage for the first one.
	PrepareStage(parent, stage *StageInfo) error
	// OnStageDone runs after the stage action and its checkpoint have both succeeded.
	OnStageDone(stage *StageInfo, actionDuration, checkpointDuration time.Duration) error
	// Finish runs after the last stage has been checkpointed.
	Finish() error
}
