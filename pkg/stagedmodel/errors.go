package stagedmodel

import "github.com/pkg/errors"

var (
	ErrNotImplemented = errors.New("not implemented")
	ErrStageNotFound  = errors.New("stage not found")

	ErrModelMustBeSet       = errors.New("model must be set")
	ErrDataMustBeSet        = errors.New("data must be set")
	ErrStageNameMustBeSet   = errors.New("stage name must be set")
	ErrStageActionMustBeSet = errors.New("stage action must be set")
	ErrDuplicateStage       = errors.New("duplicate stage name")
	ErrEmptyPath            = errors.New("path must be set")
	ErrPredictionLength     = errors.New("number of predictions does not match number of rows")
)
