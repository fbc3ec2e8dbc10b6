package file

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/studentbase/internal/domain/shared"
	"github.com/alem-hub/studentbase/internal/domain/student"
	"github.com/alem-hub/studentbase/pkg/logger"
)

func TestStore_SaveLoad_DioufAwa1998(t *testing.T) {
	ctx := context.Background()
	store := NewStore(t.TempDir())

	require.NoError(t, store.Save(ctx, student.DefaultLocation, student.NewStudent("Diouf", "Awa", 1998)))

	got, err := store.Load(ctx, student.DefaultLocation)
	require.NoError(t, err)

	desc := got.String()
	assert.Contains(t, desc, "Nom=Diouf")
	assert.Contains(t, desc, "Prenom=Awa")
	assert.Contains(t, desc, "AnneeNais=1998")
	assert.Equal(t, 26, got.Age(2024))
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(t.TempDir())

	records := []*student.Student{
		student.NewStudent("Diouf", "Awa", 1998),
		student.NewStudent("", "", 0),
		student.NewStudent("Faye", "Ousmane", -2024),
		student.NewStudent("Gueye", "Mame Diarra", 1 << 30),
	}

	for _, in := range records {
		require.NoError(t, store.Save(ctx, "record.bin", in))

		out, err := store.Load(ctx, "record.bin")
		require.NoError(t, err)
		assert.True(t, in.Equal(out), "want %v, got %v", in, out)
	}
}

func TestStore_LoadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(ctx, "base.bin", student.NewStudent("Sow", "Khady", 2001)))

	first, err := store.Load(ctx, "base.bin")
	require.NoError(t, err)
	second, err := store.Load(ctx, "base.bin")
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
}

func TestStore_SaveOverwritesPreviousContents(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, store.Save(ctx, "base.bin", student.NewStudent("A very long family name", "and first name", 1900)))
	require.NoError(t, store.Save(ctx, "base.bin", student.NewStudent("Ba", "Li", 2000)))

	got, err := store.Load(ctx, "base.bin")
	require.NoError(t, err)
	assert.True(t, student.NewStudent("Ba", "Li", 2000).Equal(got))
}

func TestStore_LoadMissingIsIO(t *testing.T) {
	store := NewStore(t.TempDir())

	got, err := store.Load(context.Background(), "missing.bin")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, shared.IsIO(err))
	assert.True(t, shared.IsNotFound(err))
	assert.False(t, shared.IsFormat(err))
}

func TestStore_LoadGarbageIsFormat(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.bin"), bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 32), 0o644))

	got, err := NewStore(dir).Load(context.Background(), "base.bin")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, shared.IsFormat(err))
	assert.False(t, shared.IsIO(err))
}

func TestStore_LoadEmptyFileIsFormat(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.bin"), nil, 0o644))

	_, err := NewStore(dir).Load(context.Background(), "base.bin")
	require.Error(t, err)
	assert.True(t, shared.IsFormat(err))
}

func TestStore_SaveIntoMissingDirectoryIsIO(t *testing.T) {
	store := NewStore(t.TempDir())

	err := store.Save(context.Background(), filepath.Join("no", "such", "dir", "base.bin"), student.NewStudent("a", "b", 1))
	require.Error(t, err)
	assert.True(t, shared.IsIO(err))
}

func TestStore_SaveReadOnlyDirectoryIsIO(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	err := NewStore(dir).Save(context.Background(), "base.bin", student.NewStudent("a", "b", 1))
	require.Error(t, err)
	assert.True(t, shared.IsIO(err))
}

func TestStore_InvalidInput(t *testing.T) {
	ctx := context.Background()
	store := NewStore(t.TempDir())

	err := store.Save(ctx, "base.bin", nil)
	assert.True(t, shared.IsInvalidInput(err))

	err = store.Save(ctx, "  ", student.NewStudent("a", "b", 1))
	assert.True(t, shared.IsInvalidInput(err))

	_, err = store.Load(ctx, "")
	assert.True(t, shared.IsInvalidInput(err))
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewStore(t.TempDir()).Save(ctx, "base.bin", student.NewStudent("a", "b", 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_PathResolution(t *testing.T) {
	store := NewStore("/data")
	assert.Equal(t, filepath.Join("/data", "base.bin"), store.Path("base.bin"))
	assert.Equal(t, filepath.Clean("/tmp/x.bin"), store.Path("/tmp/x.bin"))

	assert.Equal(t, "base.bin", NewStore("").Path("base.bin"))
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(t.TempDir())

	require.NoError(t, store.Save(ctx, "base.bin", student.NewStudent("a", "b", 1)))
	require.NoError(t, store.Delete(ctx, "base.bin"))
	require.NoError(t, store.Delete(ctx, "base.bin"))

	_, err := store.Load(ctx, "base.bin")
	assert.True(t, shared.IsNotFound(err))

	assert.True(t, shared.IsInvalidInput(store.Delete(ctx, "")))
}

func TestStore_Ping(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	assert.NoError(t, NewStore(root).Ping(ctx))
	assert.NoError(t, NewStore("").Ping(ctx))

	err := NewStore(filepath.Join(root, "absent")).Ping(ctx)
	require.Error(t, err)
	assert.True(t, shared.IsIO(err))

	notDir := filepath.Join(root, "file.txt")
	require.NoError(t, os.WriteFile(notDir, []byte("x"), 0o644))
	err = NewStore(notDir).Ping(ctx)
	require.Error(t, err)
	assert.True(t, shared.IsIO(err))
}

func TestStore_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	store := NewStore(t.TempDir(), WithLogger(logger.New(logger.Options{Output: &buf, Level: logger.LevelDebug})))

	_, err := store.Load(context.Background(), "missing.bin")
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "store operation failed")
	assert.Contains(t, out, `"error_kind":"io"`)
	assert.Contains(t, out, `"backend":"file"`)
}
