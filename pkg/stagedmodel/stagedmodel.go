package stagedmodel

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/stagedmodel/pkg/logging"
	"github.com/askiada/stagedmodel/pkg/stagedmodel/model"
	"github.com/askiada/stagedmodel/pkg/table"
)

const (
	idColumn         = "id"
	predictionColumn = "prediction"
)

// StagedModel drives the init, train and submit lifecycle of a Model.
type StagedModel struct {
	config Config
	model  Model
	stages []Stage
	logger *zap.Logger
	hooks  []model.TrainHook
}

// New creates a staged model. The model's stages are copied once and validated: names must be set and unique, and
// every stage needs an action. Unless WithLogger is given, Info logs, including the notice of each training stage, go
// to stdout.
func New(cfg Config, m Model, opts ...Option) (*StagedModel, error) {
	if m == nil {
		return nil, ErrModelMustBeSet
	}

	declared := m.Stages()
	stages := make([]Stage, len(declared))
	seen := make(map[string]struct{}, len(declared))

	for i, stage := range declared {
		if stage.Name == "" {
			return nil, errors.Wrapf(ErrStageNameMustBeSet, "stage %d", i)
		}

		if stage.Action == nil {
			return nil, errors.Wrapf(ErrStageActionMustBeSet, "stage %s", stage.Name)
		}

		if _, ok := seen[stage.Name]; ok {
			return nil, errors.Wrapf(ErrDuplicateStage, "stage %s", stage.Name)
		}

		seen[stage.Name] = struct{}{}
		stages[i] = stage
	}

	sm := &StagedModel{
		config: cfg,
		model:  m,
		stages: stages,
		logger: logging.NewConsoleLogger(os.Stdout, "stagedmodel"),
	}

	for _, opt := range opts {
		opt(sm)
	}

	for _, hook := range sm.hooks {
		err := hook.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply train hook")
		}
	}

	return sm, nil
}

// Config returns the configuration of the staged model.
func (sm *StagedModel) Config() Config {
	return sm.config
}

// Stages returns the stages in declared order.
func (sm *StagedModel) Stages() []Stage {
	return append([]Stage(nil), sm.stages...)
}

// PreprocessAndSaveData reads the dataset at path inside the data folder, preprocesses it, and writes the result
// with its index to the preprocessed path.
func (sm *StagedModel) PreprocessAndSaveData(path string) error {
	src, err := sm.config.DataPath(path)
	if err != nil {
		return err
	}

	dst, err := sm.config.PreprocessedDataPath(path)
	if err != nil {
		return err
	}

	data, err := table.ReadCSVFile(src)
	if err != nil {
		return errors.Wrap(err, "unable to read dataset")
	}

	preprocessed, err := sm.model.Preprocess(data)
	if err != nil {
		return errors.Wrapf(err, "unable to preprocess %s", src)
	}

	if preprocessed == nil {
		return errors.Wrapf(ErrDataMustBeSet, "preprocessing %s returned no data", src)
	}

	err = preprocessed.WriteCSVFile(dst)
	if err != nil {
		return errors.Wrap(err, "unable to save preprocessed dataset")
	}

	sm.logger.Debug("dataset preprocessed", zap.String("source", src), zap.String("destination", dst))

	return nil
}

// Init preprocesses the unlabeled, train and test datasets, in this order, then loads the model.
func (sm *StagedModel) Init() error {
	for _, path := range []string{sm.config.UnlabeledDataPath, sm.config.TrainDataPath, sm.config.TestDataPath} {
		err := sm.PreprocessAndSaveData(path)
		if err != nil {
			return errors.Wrapf(err, "unable to initialise dataset %q", path)
		}
	}

	return errors.Wrap(sm.model.Load(), "unable to load model")
}

// resumePoint returns the position of the first stage named like the configured stage.
func (sm *StagedModel) resumePoint() (int, error) {
	for i, stage := range sm.stages {
		if stage.Name == sm.config.Stage {
			return i, nil
		}
	}

	return 0, errors.Wrapf(ErrStageNotFound, "stage %q", sm.config.Stage)
}

func (sm *StagedModel) prepareStages(first int) ([]*model.StageInfo, error) {
	infos := make([]*model.StageInfo, len(sm.stages))
	parent := model.StartStage

	for i, stage := range sm.stages {
		info := &model.StageInfo{
			Name:     stage.Name,
			Position: i,
			Skipped:  i < first,
		}
		infos[i] = info

		for _, hook := range sm.hooks {
			err := hook.PrepareStage(parent, info)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to prepare stage %s", stage.Name)
			}
		}

		parent = info
	}

	return infos, nil
}

// Train runs the configured stage and every stage after it, saving the model after each one. It fails without
// running anything when no stage has the configured name.
func (sm *StagedModel) Train() error {
	first, err := sm.resumePoint()
	if err != nil {
		return err
	}

	infos, err := sm.prepareStages(first)
	if err != nil {
		return err
	}

	logger := sm.logger.With(zap.String("run", uuid.NewString()))

	for i := first; i < len(sm.stages); i++ {
		stage := sm.stages[i]
		logger.Info("stage", zap.String("stage", stage.Name))

		start := time.Now()

		err := stage.Action()
		if err != nil {
			return errors.Wrapf(err, "stage %s", stage.Name)
		}

		actionDuration := time.Since(start)
		start = time.Now()

		err = sm.model.Save()
		if err != nil {
			return errors.Wrapf(err, "unable to save model after stage %s", stage.Name)
		}

		checkpointDuration := time.Since(start)

		for _, hook := range sm.hooks {
			err := hook.OnStageDone(infos[i], actionDuration, checkpointDuration)
			if err != nil {
				return errors.Wrapf(err, "unable to run stage hook after %s", stage.Name)
			}
		}
	}

	for _, hook := range sm.hooks {
		err := hook.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish train hook")
		}
	}

	return nil
}

// Submit predicts data and writes the submission file: an id column with the index of data, in order, and a
// prediction column. Any previous submission is replaced.
func (sm *StagedModel) Submit(data *table.Table) error {
	if data == nil {
		return ErrDataMustBeSet
	}

	predictions, err := sm.model.Predict(data)
	if err != nil {
		return errors.Wrap(err, "unable to predict")
	}

	if len(predictions) != data.Len() {
		return errors.Wrapf(ErrPredictionLength, "got %d predictions for %d rows", len(predictions), data.Len())
	}

	submission, err := table.New(idColumn, predictionColumn)
	if err != nil {
		return err
	}

	for i, id := range data.Index() {
		err = submission.AppendRow(id, predictions[i])
		if err != nil {
			return errors.Wrapf(err, "unable to add prediction %d", i)
		}
	}

	path := sm.config.SubmissionPath()

	err = submission.WriteCSVFile(path, table.WithoutIndex())
	if err != nil {
		return errors.Wrap(err, "unable to write submission")
	}

	sm.logger.Debug("submission written", zap.String("path", path), zap.Int("rows", submission.Len()))

	return nil
}
