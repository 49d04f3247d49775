package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharaoh/internal/config"
	"pharaoh/internal/domain"
)

func newStorage(t *testing.T) (*JSONStorage, *config.Config) {
	t.Helper()
	cfg := config.New()
	cfg.SearchDir = t.TempDir()
	return NewJSONStorage(cfg), cfg
}

func TestJSONStorage_SaveLoad(t *testing.T) {
	st, cfg := newStorage(t)

	meta := domain.RunMeta{RunID: "run-1", TotalTestCases: 2, PassedTestCases: 1, FailedTestCases: 1, Jobs: 1}
	failures := []domain.TestFailure{{
		TestName:       "foo::failure",
		Suite:          "foo",
		Cmd:            "echo fou",
		Summary:        "\x1b[33mstdout\x1b[0m differs:\n\x1b[31m+fou\n\x1b[0m",
		ExpectedStatus: 0,
		ActualStatus:   0,
	}}

	require.NoError(t, st.Save(meta, failures))
	_, err := os.Stat(filepath.Join(cfg.SearchDir, ".pharaoh", "last-run.json"))
	require.NoError(t, err)

	out, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, meta, out.Meta)
	require.Len(t, out.Details, 1)
	assert.Equal(t, "stdout differs:\n+fou\n", out.Details[0].Summary)
	assert.Equal(t, "echo fou", out.Details[0].Cmd)

	// the caller's slice is left untouched
	assert.Contains(t, failures[0].Summary, "\x1b[")
}

func TestJSONStorage_SaveOutputKeepsResolved(t *testing.T) {
	st, _ := newStorage(t)

	require.NoError(t, st.Save(domain.RunMeta{RunID: "r"}, []domain.TestFailure{{TestName: "a::b", Suite: "a"}}))
	out, err := st.Load()
	require.NoError(t, err)

	out.Details[0].Resolved = true
	require.NoError(t, st.SaveOutput(out))

	again, err := st.Load()
	require.NoError(t, err)
	assert.True(t, again.Details[0].Resolved)
}

func TestJSONStorage_LoadMissing(t *testing.T) {
	st, _ := newStorage(t)

	_, err := st.Load()
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindStorage))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestJSONStorage_LoadCorrupt(t *testing.T) {
	st, cfg := newStorage(t)
	path := cfg.GetOutputPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := st.Load()
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindStorage))
}
