package stagedmodel

import "github.com/askiada/stagedmodel/pkg/table"

// Model is the experiment specific part of a staged model.
type Model interface {
	// Preprocess transforms a raw dataset before it is saved in the data folder.
	Preprocess(data *table.Table) (*table.Table, error)
	// Load prepares the model once the datasets have been preprocessed.
	Load() error
	// Save checkpoints the model. It runs after every training stage.
	Save() error
	// Predict returns one prediction per row of data, in row order.
	Predict(data *table.Table) ([]string, error)
	// Stages returns the training stages in the order they must run.
	Stages() []Stage
}

// Stage is a named training step.
type Stage struct {
	Name   string
	Action func() error
}

// Unimplemented can be embedded in a Model that only provides some of the hooks.
// Every hook it provides fails with ErrNotImplemented.
type Unimplemented struct{}

func (Unimplemented) Preprocess(*table.Table) (*table.Table, error) {
	return nil, ErrNotImplemented
}

func (Unimplemented) Load() error {
	return ErrNotImplemented
}

func (Unimplemented) Save() error {
	return ErrNotImplemented
}

func (Unimplemented) Predict(*table.Table) ([]string, error) {
	return nil, ErrNotImplemented
}

func (Unimplemented) Stages() []Stage {
	return nil
}

var _ Model = Unimplemented{}
