package progress_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/stagedmodel/pkg/stagedmodel/model"
	"github.com/askiada/stagedmodel/pkg/stagedmodel/progress"
)

func TestBar(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	bar := progress.NewBar(&out)

	first := &model.StageInfo{Name: "first", Position: 0, Skipped: true}
	second := &model.StageInfo{Name: "second", Position: 1}
	third := &model.StageInfo{Name: "third", Position: 2}

	require.NoError(t, bar.New())
	require.NoError(t, bar.PrepareStage(model.StartStage, first))
	require.NoError(t, bar.PrepareStage(first, second))
	require.NoError(t, bar.PrepareStage(second, third))
	require.NoError(t, bar.OnStageDone(second, time.Millisecond, time.Millisecond))
	require.NoError(t, bar.OnStageDone(third, time.Millisecond, time.Millisecond))
	require.NoError(t, bar.Finish())

	assert.Contains(t, out.String(), "second")
	assert.Contains(t, out.String(), "third")
}
