package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
models:
  - model_name: test-model
    model_family: test
    num_gpus: 2
    partition: a40
    pipeline_parallelism: true
    enforce_eager: false
  - model_name: other-model
    num_gpus: 4
`

func TestParseSampleConfig(t *testing.T) {
	store, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	cfg, err := store.Get("test-model")
	require.NoError(t, err)
	assert.Equal(t, "test-model", cfg.ModelName)
	assert.Len(t, cfg.Params, 5)
}

func TestParamOrderFollowsFile(t *testing.T) {
	store, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	cfg, err := store.Get("test-model")
	require.NoError(t, err)

	names := make([]string, 0, len(cfg.Params))
	for _, p := range cfg.Params {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"model_family", "num_gpus", "partition", "pipeline_parallelism", "enforce_eager"}, names)
}

func TestParamValueTypes(t *testing.T) {
	store, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	cfg, err := store.Get("test-model")
	require.NoError(t, err)

	gpus, ok := cfg.Lookup("num_gpus")
	require.True(t, ok)
	assert.Equal(t, 2, gpus)

	pp, ok := cfg.Lookup("pipeline_parallelism")
	require.True(t, ok)
	assert.Equal(t, true, pp)

	partition, ok := cfg.Lookup("partition")
	require.True(t, ok)
	assert.Equal(t, "a40", partition)
}

func TestGetUnknownModel(t *testing.T) {
	store, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	_, err = store.Get("no-such-model")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModelNotFound)
	assert.Contains(t, err.Error(), "no-such-model")
}

func TestDuplicateModelNames(t *testing.T) {
	_, err := Parse([]byte(`
models:
  - model_name: dup
  - model_name: dup
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate model name")
}

func TestMissingModelName(t *testing.T) {
	_, err := Parse([]byte(`
models:
  - num_gpus: 1
`))
	require.Error(t, err)
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	store, err := Load("")
	require.NoError(t, err)
	require.NotEmpty(t, store.List())

	cfg, err := store.Get("Meta-Llama-3.1-8B-Instruct")
	require.NoError(t, err)
	assert.Equal(t, "Meta-Llama-3.1-8B-Instruct", cfg.ModelName)
}

func TestLoadExternalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	store, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, store.List(), 2)

	// External config replaces the embedded registry entirely.
	_, err = store.Get("Meta-Llama-3.1-8B-Instruct")
	assert.True(t, errors.Is(err, ErrModelNotFound))
}

func TestLoadMissingExternalFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
