package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strops/pkg/adapters/fs"
	"github.com/aretw0/strops/pkg/core"
)

func TestBatch_Run(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"greeting.txt": "hello world",
		"bad.txt":      "ab\xffcd",
	})

	b, err := fs.NewBatch(core.NewService(), fs.Config{Root: root})
	require.NoError(t, err)

	results, err := b.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	bad := results[0]
	assert.Equal(t, "bad.txt", bad.Path)
	assert.ErrorIs(t, bad.Err, core.ErrInvalidArgument)
	assert.NotEmpty(t, bad.Error)
	assert.Empty(t, bad.Results)

	good := results[1]
	assert.Equal(t, "greeting.txt", good.Path)
	require.NoError(t, good.Err)
	require.Len(t, good.Results, 3)
	assert.Equal(t, "dlrow olleh", good.Results[0].Output)
	assert.Equal(t, 3, good.Results[1].Output)
	assert.Equal(t, "Hello World", good.Results[2].Output)
}

func TestBatch_SelectedOperationsAndOutDir(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	writeTree(t, root, map[string]string{"sub/a.txt": "abc"})

	b, err := fs.NewBatch(core.NewService(), fs.Config{
		Root:       root,
		Operations: []core.Operation{core.OpReverse, core.OpCountVowels},
		OutDir:     out,
	})
	require.NoError(t, err)

	results, err := b.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Results, 2)

	data, err := os.ReadFile(filepath.Join(out, "sub", "a.txt.reverse"))
	require.NoError(t, err)
	assert.Equal(t, "cba", string(data))

	// Integer results are not written out.
	_, err = os.Stat(filepath.Join(out, "sub", "a.txt.count-vowels"))
	assert.True(t, os.IsNotExist(err))
}

func TestBatch_RunFilesMissing(t *testing.T) {
	b, err := fs.NewBatch(core.NewService(), fs.Config{Root: t.TempDir()})
	require.NoError(t, err)

	results, err := b.RunFiles(context.Background(), []string{"missing.txt"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestBatch_RunInvalidRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := []struct {
		name string
		root string
	}{
		{"Missing Directory", filepath.Join(dir, "nope")},
		{"Regular File", file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := fs.NewBatch(core.NewService(), fs.Config{Root: tt.root})
			require.NoError(t, err)

			results, err := b.Run(context.Background())
			assert.ErrorIs(t, err, core.ErrInvalidArgument)
			assert.Empty(t, results)
		})
	}
}

func TestNewBatch_Validation(t *testing.T) {
	_, err := fs.NewBatch(nil, fs.Config{})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = fs.NewBatch(core.NewService(), fs.Config{Patterns: []string{"[bad"}})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}
