package jsonfile

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTaskFile(t *testing.T, fsys afero.Fs) *TaskFile {
	t.Helper()
	f, err := NewTaskFile(fsys, "tasks.json", discardLogger())
	require.NoError(t, err)
	return f
}

func TestNewTaskFile(t *testing.T) {
	t.Run("nil filesystem", func(t *testing.T) {
		f, err := NewTaskFile(nil, "tasks.json", discardLogger())
		assert.Error(t, err)
		assert.Nil(t, f)
	})

	t.Run("default path", func(t *testing.T) {
		f, err := NewTaskFile(afero.NewMemMapFs(), "", nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultPath, f.Path())
	})
}

func TestTaskFile_SaveAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	f := newTestTaskFile(t, fsys)

	tasks := []domain.Task{
		{ID: 1, Description: "buy milk", Done: false, Priority: 3},
		{ID: 2, Description: "walk dog", Done: true, Priority: 0},
		{ID: 5, Description: "", Done: false, Priority: 255},
	}

	require.NoError(t, f.Save(ctx, tasks))

	loaded := f.Load(ctx)
	assert.Equal(t, tasks, loaded)
}

func TestTaskFile_SaveWritesPrettyPrintedArray(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	f := newTestTaskFile(t, fsys)

	require.NoError(t, f.Save(ctx, []domain.Task{{ID: 1, Description: "buy milk", Priority: 3}}))

	data, err := afero.ReadFile(fsys, "tasks.json")
	require.NoError(t, err)

	expected := `[
  {
    "id": 1,
    "description": "buy milk",
    "done": false,
    "priority": 3
  }
]
`
	assert.Equal(t, expected, string(data))
}

func TestTaskFile_SaveTruncatesPreviousContent(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	f := newTestTaskFile(t, fsys)

	require.NoError(t, f.Save(ctx, []domain.Task{
		{ID: 1, Description: "a fairly long description to make the file big", Priority: 1},
		{ID: 2, Description: "another one", Priority: 2},
	}))
	require.NoError(t, f.Save(ctx, []domain.Task{{ID: 2, Description: "another one", Priority: 2}}))

	assert.Equal(t, []domain.Task{{ID: 2, Description: "another one", Priority: 2}}, f.Load(ctx))
}

func TestTaskFile_SaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	f := newTestTaskFile(t, fsys)

	require.NoError(t, f.Save(ctx, nil))

	data, err := afero.ReadFile(fsys, "tasks.json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
	assert.Equal(t, []domain.Task{}, f.Load(ctx))
}

func TestTaskFile_SaveOnReadOnlyFilesystem(t *testing.T) {
	ctx := context.Background()
	f := newTestTaskFile(t, afero.NewReadOnlyFs(afero.NewMemMapFs()))

	err := f.Save(ctx, []domain.Task{{ID: 1, Description: "buy milk", Priority: 3}})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrPersistenceUnavailable)

	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "save", storeErr.Operation)
}

func TestTaskFile_LoadFallsBackToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing file", content: nil},
		{name: "empty file", content: strPtr("")},
		{name: "invalid json", content: strPtr("{not json")},
		{name: "object instead of array", content: strPtr(`{"id": 1}`)},
		{name: "null document", content: strPtr("null")},
		{name: "missing field", content: strPtr(`[{"id": 1, "description": "x", "done": false}]`)},
		{name: "priority out of range", content: strPtr(`[{"id": 1, "description": "x", "done": false, "priority": 256}]`)},
		{name: "negative priority", content: strPtr(`[{"id": 1, "description": "x", "done": false, "priority": -1}]`)},
		{name: "zero id", content: strPtr(`[{"id": 0, "description": "x", "done": false, "priority": 1}]`)},
		{name: "fractional id", content: strPtr(`[{"id": 1.5, "description": "x", "done": false, "priority": 1}]`)},
		{name: "wrong done type", content: strPtr(`[{"id": 1, "description": "x", "done": "yes", "priority": 1}]`)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			if tc.content != nil {
				require.NoError(t, afero.WriteFile(fsys, "tasks.json", []byte(*tc.content), 0o644))
			}
			f := newTestTaskFile(t, fsys)

			tasks := f.Load(context.Background())
			assert.NotNil(t, tasks)
			assert.Empty(t, tasks)
		})
	}
}

func TestTaskFile_LoadAcceptsHandWrittenDocument(t *testing.T) {
	fsys := afero.NewMemMapFs()
	content := `[{"id":3,"description":"call mom","done":true,"priority":9},{"id":4,"description":"pay rent","done":false,"priority":1}]`
	require.NoError(t, afero.WriteFile(fsys, "tasks.json", []byte(content), 0o644))
	f := newTestTaskFile(t, fsys)

	assert.Equal(t, []domain.Task{
		{ID: 3, Description: "call mom", Done: true, Priority: 9},
		{ID: 4, Description: "pay rent", Done: false, Priority: 1},
	}, f.Load(context.Background()))
}

func TestSchemaViolations(t *testing.T) {
	schema, err := compileTaskSchema()
	require.NoError(t, err)

	err = schema.Validate([]interface{}{
		map[string]interface{}{"id": float64(1), "description": "x", "done": false, "priority": float64(300)},
	})
	require.Error(t, err)

	violations := schemaViolations(err)
	require.NotEmpty(t, violations)
	assert.Contains(t, violations[0], "/0/priority")
}

func strPtr(s string) *string {
	return &s
}
