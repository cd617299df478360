package measure_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/stagedmodel/pkg/stagedmodel/measure"
	"github.com/askiada/stagedmodel/pkg/stagedmodel/model"
)

func TestDefaultMetric(t *testing.T) {
	t.Parallel()

	mt := &measure.DefaultMetric{}
	assert.Equal(t, time.Duration(0), mt.AVGDuration())
	assert.Equal(t, time.Duration(0), mt.AVGCheckpointDuration())

	mt.AddDuration(2 * time.Second)
	mt.AddCheckpointDuration(20 * time.Millisecond)
	mt.AddDuration(4 * time.Second)
	mt.AddCheckpointDuration(40 * time.Millisecond)

	assert.Equal(t, int64(2), mt.Runs())
	assert.Equal(t, 3*time.Second, mt.AVGDuration())
	assert.Equal(t, 30*time.Millisecond, mt.AVGCheckpointDuration())
}

func TestAddMetricKeepsExisting(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	first := msr.AddMetric("vocabulary")
	first.AddDuration(time.Second)

	assert.Same(t, first, msr.AddMetric("vocabulary"))
	assert.Same(t, first, msr.GetMetric("vocabulary"))
	assert.Nil(t, msr.GetMetric("priors"))
}

func TestTrainMeasure(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	hook := measure.TrainMeasure(msr)
	require.NoError(t, hook.New())

	first := &model.StageInfo{Name: "first", Position: 0, Skipped: true}
	second := &model.StageInfo{Name: "second", Position: 1}
	require.NoError(t, hook.PrepareStage(model.StartStage, first))
	require.NoError(t, hook.PrepareStage(first, second))
	require.NoError(t, hook.OnStageDone(second, 10*time.Millisecond, 2*time.Millisecond))
	require.NoError(t, hook.Finish())

	metrics := msr.AllMetrics()
	assert.Len(t, metrics, 1)
	require.Contains(t, metrics, "second")
	assert.Equal(t, 10*time.Millisecond, metrics["second"].AVGDuration())
	assert.Equal(t, 2*time.Millisecond, metrics["second"].AVGCheckpointDuration())
}
