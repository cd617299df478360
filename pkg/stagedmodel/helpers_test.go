package stagedmodel_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/askiada/stagedmodel/pkg/stagedmodel"
	"github.com/askiada/stagedmodel/pkg/stagedmodel/model"
	"github.com/askiada/stagedmodel/pkg/table"
)

// fakeModel records every hook call in calls.
type fakeModel struct {
	calls      []string
	preprocess func(data *table.Table) (*table.Table, error)
	predict    func(data *table.Table) ([]string, error)
	stages     []stagedmodel.Stage
	loadErr    error
	saveErr    error
}

func (m *fakeModel) Preprocess(data *table.Table) (*table.Table, error) {
	if m.preprocess == nil {
		return data, nil
	}

	return m.preprocess(data)
}

func (m *fakeModel) Load() error {
	m.calls = append(m.calls, "load")

	return m.loadErr
}

func (m *fakeModel) Save() error {
	m.calls = append(m.calls, "save")

	return m.saveErr
}

func (m *fakeModel) Predict(data *table.Table) ([]string, error) {
	m.calls = append(m.calls, "predict")

	return m.predict(data)
}

func (m *fakeModel) Stages() []stagedmodel.Stage {
	return m.stages
}

func (m *fakeModel) recordStage(name string, err error) stagedmodel.Stage {
	return stagedmodel.Stage{
		Name: name,
		Action: func() error {
			m.calls = append(m.calls, name)

			return err
		},
	}
}

// writeCSV writes content to name inside dir.
func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

type recordingHook struct {
	prepared []model.StageInfo
	parents  []string
	done     []string
	finished bool
	created  int
}

func (h *recordingHook) New() error {
	h.created++

	return nil
}

func (h *recordingHook) PrepareStage(parent, stage *model.StageInfo) error {
	h.parents = append(h.parents, parent.Name)
	h.prepared = append(h.prepared, *stage)

	return nil
}

func (h *recordingHook) OnStageDone(stage *model.StageInfo, _, _ time.Duration) error {
	h.done = append(h.done, stage.Name)

	return nil
}

func (h *recordingHook) Finish() error {
	h.finished = true

	return nil
}
