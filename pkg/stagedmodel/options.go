package stagedmodel

import (
	"go.uber.org/zap"

	"github.com/askiada/stagedmodel/pkg/stagedmodel/model"
)

type Option func(sm *StagedModel)

// WithLogger sets the logger receiving the stage progress notices.
func WithLogger(logger *zap.Logger) Option {
	return func(sm *StagedModel) {
		sm.logger = logger
	}
}

// WithTrainHooks adds hooks observing every call to Train.
func WithTrainHooks(hooks ...model.TrainHook) Option {
	return func(sm *StagedModel) {
		sm.hooks = append(sm.hooks, hooks...)
	}
}
