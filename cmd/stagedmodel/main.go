// Command stagedmodel runs the staged lifecycle of the baseline text classifier.
//
//	stagedmodel --config experiment.yaml init
//	stagedmodel --config experiment.yaml --stage likelihoods train --graph plan.dot
//	stagedmodel --config experiment.yaml submit
package main

import (
	"io"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/stagedmodel/internal/store"
	"github.com/askiada/stagedmodel/pkg/baseline"
	"github.com/askiada/stagedmodel/pkg/logging"
	"github.com/askiada/stagedmodel/pkg/stagedmodel"
	"github.com/askiada/stagedmodel/pkg/stagedmodel/drawer"
	"github.com/askiada/stagedmodel/pkg/stagedmodel/measure"
	"github.com/askiada/stagedmodel/pkg/stagedmodel/model"
	"github.com/askiada/stagedmodel/pkg/stagedmodel/progress"
	"github.com/askiada/stagedmodel/pkg/table"
)

type initCmd struct{}

type trainCmd struct {
	Graph    string `arg:"--graph" help:"write the training plan with stage durations to this DOT file"`
	Progress bool   `arg:"--progress" help:"show a progress bar over the stages"`
}

type submitCmd struct {
	Data        string `arg:"--data" help:"CSV file to predict (default: the preprocessed test dataset)"`
	IndexColumn string `arg:"--index-column" help:"column holding the row ids of --data"`
}

type args struct {
	Config string `arg:"-c,--config,required" help:"YAML experiment configuration"`
	Stage  string `arg:"--stage" help:"stage to resume training from, overrides the configuration"`
	Debug  bool   `arg:"--debug" help:"enable debug logs"`

	Init   *initCmd   `arg:"subcommand:init" help:"preprocess the datasets and load the model"`
	Train  *trainCmd  `arg:"subcommand:train" help:"run the training stages from the configured stage"`
	Submit *submitCmd `arg:"subcommand:submit" help:"write the submission file"`
}

func (args) Version() string {
	return "stagedmodel 0.1.0"
}

func (args) Description() string {
	return `Preprocess, train in resumable stages, and submit predictions of a naive Bayes text classifier.`
}

func main() {
	var a args
	p := arg.MustParse(&a)

	if p.Subcommand() == nil {
		p.Fail("missing subcommand: init, train or submit")
	}

	logger, err := logging.NewLogger("stagedmodel", a.Debug)
	if err != nil {
		p.Fail(err.Error())
	}

	os.Exit(execute(a, logger, os.Stderr))
}

// execute runs the command and returns its exit code. The logger is synced before returning.
func execute(a args, logger *zap.Logger, progressOutput io.Writer) int {
	err := run(a, logger, progressOutput)
	if err != nil {
		logger.Error("stagedmodel failed", zap.Error(err))
	}

	_ = logger.Sync()

	if err != nil {
		return 1
	}

	return 0
}

func run(a args, logger *zap.Logger, progressOutput io.Writer) error {
	cfg, err := stagedmodel.LoadConfig(a.Config)
	if err != nil {
		return err
	}

	if a.Stage != "" {
		cfg.Stage = a.Stage
	}

	m, err := baseline.New(cfg, store.NewDiskStore(cfg.CheckpointPath()), baseline.WithLogger(logger))
	if err != nil {
		return errors.Wrap(err, "unable to create model")
	}

	opts := []stagedmodel.Option{stagedmodel.WithLogger(logger)}
	if a.Train != nil {
		opts = append(opts, stagedmodel.WithTrainHooks(trainHooks(a.Train, progressOutput)...))
	}

	sm, err := stagedmodel.New(cfg, m, opts...)
	if err != nil {
		return errors.Wrap(err, "unable to create staged model")
	}

	switch {
	case a.Init != nil:
		return sm.Init()
	case a.Train != nil:
		err = m.Load()
		if err != nil {
			return errors.Wrap(err, "unable to load model")
		}

		return sm.Train()
	case a.Submit != nil:
		err = m.Load()
		if err != nil {
			return errors.Wrap(err, "unable to load model")
		}

		data, err := submitData(cfg, a.Submit)
		if err != nil {
			return err
		}

		return sm.Submit(data)
	}

	return nil
}

func trainHooks(cmd *trainCmd, progressOutput io.Writer) []model.TrainHook {
	var hooks []model.TrainHook

	if cmd.Graph != "" {
		msr := measure.NewDefaultMeasure()
		hooks = append(hooks, measure.TrainMeasure(msr), drawer.TrainDrawer(drawer.NewDOTDrawer(cmd.Graph), msr))
	}

	if cmd.Progress {
		hooks = append(hooks, progress.NewBar(progressOutput))
	}

	return hooks
}

func submitData(cfg stagedmodel.Config, cmd *submitCmd) (*table.Table, error) {
	path := cmd.Data
	if path == "" {
		var err error

		path, err = cfg.PreprocessedDataPath(cfg.TestDataPath)
		if err != nil {
			return nil, errors.Wrap(err, "unable to locate test data")
		}
	}

	var opts []table.ReadOption
	if cmd.IndexColumn != "" {
		opts = append(opts, table.WithIndexColumn(cmd.IndexColumn))
	}

	data, err := table.ReadCSVFile(path, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read submission data")
	}

	return data, nil
}
