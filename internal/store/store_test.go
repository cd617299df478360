package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/stagedmodel/internal/store"
)

type state struct {
	Vocabulary []string           `json:"vocabulary"`
	Priors     map[string]float64 `json:"priors"`
}

func TestStores(t *testing.T) {
	t.Parallel()

	tcs := map[string]func(t *testing.T) store.Store{
		"memory": func(t *testing.T) store.Store { return store.NewMemoryStore() },
		"disk":   func(t *testing.T) store.Store { return store.NewDiskStore(t.TempDir()) },
	}

	for name, newStore := range tcs {
		newStore := newStore
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			st := newStore(t)

			var got state
			found, err := st.Get("state", &got)
			require.NoError(t, err)
			assert.False(t, found)

			want := state{
				Vocabulary: []string{"good", "bad"},
				Priors:     map[string]float64{"0": -0.69, "1": -0.69},
			}
			require.NoError(t, st.Put("state", want))

			found, err = st.Get("state", &got)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, want, got)

			require.NoError(t, st.Erase("state"))
			require.NoError(t, st.Erase("state"))

			found, err = st.Get("state", &got)
			require.NoError(t, err)
			assert.False(t, found)

			assert.ErrorIs(t, st.Put("", want), store.ErrKeyMustBeSet)
		})
	}
}

func TestDiskStoreSurvivesReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, store.NewDiskStore(dir).Put("state", state{Vocabulary: []string{"x"}}))

	var got state
	found, err := store.NewDiskStore(dir).Get("state", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"x"}, got.Vocabulary)
}
