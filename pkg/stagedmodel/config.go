package stagedmodel

import (
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	preprocessedPrefix = "preprocessed_"
	submissionFileName = "submission.csv"
	checkpointFolder   = "checkpoints"
)

// Config holds the paths and the resume stage of an experiment. A key missing from the source mapping leaves the
// matching field empty.
type Config struct {
	TrainDataPath     string `mapstructure:"train_data_path"`
	TestDataPath      string `mapstructure:"test_data_path"`
	UnlabeledDataPath string `mapstructure:"unlabeled_data_path"`
	DataFolder        string `mapstructure:"data_folder"`
	ResultsFolder     string `mapstructure:"results_folder"`
	Stage             string `mapstructure:"stage"`
	// CheckpointFolder is where a model may keep its saved state. See CheckpointPath.
	CheckpointFolder string `mapstructure:"checkpoint_folder"`
}

// NewConfig decodes a configuration mapping. Unknown keys are ignored.
func NewConfig(values map[string]any) (Config, error) {
	var cfg Config

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, errors.Wrap(err, "unable to create config decoder")
	}

	err = decoder.Decode(values)
	if err != nil {
		return Config{}, errors.Wrap(err, "unable to decode config")
	}

	return cfg, nil
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to read config %s", path)
	}

	values := map[string]any{}

	err = yaml.Unmarshal(b, &values)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to parse config %s", path)
	}

	return NewConfig(values)
}

// DataPath returns the location of a dataset inside the data folder.
func (c Config) DataPath(rel string) (string, error) {
	if rel == "" {
		return "", ErrEmptyPath
	}

	return filepath.Join(c.DataFolder, rel), nil
}

// PreprocessedDataPath returns where the preprocessed version of a dataset is written. The file name gets the
// "preprocessed_" prefix and stays in the same directory as the source.
func (c Config) PreprocessedDataPath(rel string) (string, error) {
	if rel == "" {
		return "", ErrEmptyPath
	}

	dir, name := filepath.Split(rel)

	return filepath.Join(c.DataFolder, dir, preprocessedPrefix+name), nil
}

// SubmissionPath returns the location of the submission file.
func (c Config) SubmissionPath() string {
	return filepath.Join(c.ResultsFolder, submissionFileName)
}

// CheckpointPath returns CheckpointFolder, or a "checkpoints" directory in the results folder when it is not set.
func (c Config) CheckpointPath() string {
	if c.CheckpointFolder != "" {
		return c.CheckpointFolder
	}

	return filepath.Join(c.ResultsFolder, checkpointFolder)
}
