package drawer_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/stagedmodel/pkg/stagedmodel/drawer"
	"github.com/askiada/stagedmodel/pkg/stagedmodel/measure"
	"github.com/askiada/stagedmodel/pkg/stagedmodel/model"
)

func TestDOTDrawerAddStageTwice(t *testing.T) {
	t.Parallel()

	d := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "plan.dot"))
	require.NoError(t, d.AddStage("first", false))
	require.NoError(t, d.AddStage("first", false))
	require.NoError(t, d.AddStage("second", false))
	require.NoError(t, d.AddLink("first", "second"))
	require.NoError(t, d.AddLink("first", "second"))
	assert.Error(t, d.AddLink("first", "missing"))
}

func TestDOTDrawerAddMeasureUnknownStage(t *testing.T) {
	t.Parallel()

	d := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "plan.dot"))
	msr := measure.NewDefaultMeasure()
	msr.AddMetric("unknown").AddDuration(time.Second)

	assert.Error(t, d.AddMeasure(msr))
	assert.NoError(t, d.AddMeasure(measure.NewDefaultMeasure()))
}

func TestTrainDrawer(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plan.dot")
	msr := measure.NewDefaultMeasure()
	measureHook := measure.TrainMeasure(msr)
	drawHook := drawer.TrainDrawer(drawer.NewDOTDrawer(path), msr)

	first := &model.StageInfo{Name: "first", Position: 0, Skipped: true}
	second := &model.StageInfo{Name: "second", Position: 1}
	third := &model.StageInfo{Name: "third", Position: 2}

	for _, hook := range []model.TrainHook{measureHook, drawHook} {
		require.NoError(t, hook.New())
		require.NoError(t, hook.PrepareStage(model.StartStage, first))
		require.NoError(t, hook.PrepareStage(first, second))
		require.NoError(t, hook.PrepareStage(second, third))
		require.NoError(t, hook.OnStageDone(second, 30*time.Millisecond, time.Millisecond))
		require.NoError(t, hook.OnStageDone(third, 10*time.Millisecond, time.Millisecond))
		require.NoError(t, hook.Finish())
	}

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	got := string(raw)

	assert.Contains(t, got, "strict digraph")
	assert.Contains(t, got, `"start" -> "first"`)
	assert.Contains(t, got, `"first" -> "second"`)
	assert.Contains(t, got, `"second" -> "third"`)
	assert.Contains(t, got, `"third" -> "end"`)
	assert.Contains(t, got, `style="dashed"`)
	assert.Contains(t, got, "30ms, checkpoint: 1ms")
	assert.Contains(t, got, "total: ")
}
