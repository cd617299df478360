package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/askiada/stagedmodel/pkg/baseline"
	"github.com/askiada/stagedmodel/pkg/stagedmodel"
)

func writeExperiment(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	data := filepath.Join(dir, "data")
	results := filepath.Join(dir, "results")
	require.NoError(t, os.MkdirAll(data, 0o755))
	require.NoError(t, os.MkdirAll(results, 0o755))

	files := map[string]string{
		"unlabeled.csv": "text\nfine weather\n",
		"train.csv":     "text,label\ngood great,pos\nbad awful,neg\n",
		"test.csv":      "id,text\nq1,so good\nq2,awful\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(data, name), []byte(content), 0o600))
	}

	config := "data_folder: " + data + "\n" +
		"results_folder: " + results + "\n" +
		"train_data_path: train.csv\n" +
		"test_data_path: test.csv\n" +
		"unlabeled_data_path: unlabeled.csv\n" +
		"stage: " + baseline.StageVocabulary + "\n"
	path := filepath.Join(dir, "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(config), 0o600))

	return path
}

func TestRun(t *testing.T) {
	t.Parallel()

	configPath := writeExperiment(t)
	logger := zap.NewNop()
	graph := filepath.Join(t.TempDir(), "plan.dot")

	var progressOutput bytes.Buffer

	require.NoError(t, run(args{Config: configPath, Init: &initCmd{}}, logger, &progressOutput))
	require.NoError(t, run(args{Config: configPath, Train: &trainCmd{Graph: graph, Progress: true}}, logger, &progressOutput))
	require.NoError(t, run(args{Config: configPath, Submit: &submitCmd{}}, logger, &progressOutput))

	cfg, err := stagedmodel.LoadConfig(configPath)
	require.NoError(t, err)

	raw, err := os.ReadFile(cfg.SubmissionPath())
	require.NoError(t, err)
	assert.Equal(t, "id,prediction\nq1,pos\nq2,neg\n", string(raw))

	assert.FileExists(t, graph)
	assert.DirExists(t, cfg.CheckpointPath())
	assert.Contains(t, progressOutput.String(), baseline.StageEvaluate)

	// resume from a later stage, then submit the raw test file using its own ids
	require.NoError(t, run(args{Config: configPath, Stage: baseline.StageEvaluate, Train: &trainCmd{}}, logger, &progressOutput))

	rawTest := filepath.Join(cfg.DataFolder, "test.csv")
	require.NoError(t, run(args{Config: configPath, Submit: &submitCmd{Data: rawTest, IndexColumn: "id"}}, logger, &progressOutput))

	raw, err = os.ReadFile(cfg.SubmissionPath())
	require.NoError(t, err)
	assert.Equal(t, "id,prediction\nq1,pos\nq2,neg\n", string(raw))
}

func TestRunUnknownStage(t *testing.T) {
	t.Parallel()

	configPath := writeExperiment(t)
	logger := zap.NewNop()

	require.NoError(t, run(args{Config: configPath, Init: &initCmd{}}, logger, &bytes.Buffer{}))

	err := run(args{Config: configPath, Stage: "unknown", Train: &trainCmd{}}, logger, &bytes.Buffer{})
	assert.ErrorIs(t, err, stagedmodel.ErrStageNotFound)
}

func TestRunMissingConfig(t *testing.T) {
	t.Parallel()

	err := run(args{Config: filepath.Join(t.TempDir(), "missing.yaml"), Init: &initCmd{}}, zap.NewNop(), &bytes.Buffer{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExecute(t *testing.T) {
	t.Parallel()

	configPath := writeExperiment(t)

	tcs := map[string]struct {
		args     args
		wantCode int
		wantLogs int
	}{
		"success": {
			args:     args{Config: configPath, Init: &initCmd{}},
			wantCode: 0,
		},
		"failure": {
			args:     args{Config: filepath.Join(t.TempDir(), "missing.yaml"), Init: &initCmd{}},
			wantCode: 1,
			wantLogs: 1,
		},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			core, logs := observer.New(zapcore.ErrorLevel)

			assert.Equal(t, tc.wantCode, execute(tc.args, zap.New(core), &bytes.Buffer{}))

			entries := logs.FilterMessage("stagedmodel failed").All()
			require.Len(t, entries, tc.wantLogs)

			if tc.wantLogs > 0 {
				assert.Contains(t, entries[0].ContextMap()["error"], "missing.yaml")
			}
		})
	}
}
