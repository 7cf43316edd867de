package storage_test

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/infrastructure/storage"
)

func TestImageStore_SaveYDelete(t *testing.T) {
	ctx := context.Background()
	mem := afero.NewMemMapFs()
	store := storage.NewImageStore(mem)

	name, err := store.Save(ctx, dto.ImageUpload{Filename: "Foto.PNG", Content: strings.NewReader("png-bytes")})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"), "conserva la extensión en minúsculas")

	data, err := afero.ReadFile(mem, name)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	ok, err := store.Exists(name)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, name))
	ok, err = store.Exists(name)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestImageStore_NombresUnicos(t *testing.T) {
	ctx := context.Background()
	store := storage.NewImageStore(afero.NewMemMapFs())

	a, err := store.Save(ctx, dto.ImageUpload{Filename: "a.jpg", Content: strings.NewReader("a")})
	require.NoError(t, err)
	b, err := store.Save(ctx, dto.ImageUpload{Filename: "a.jpg", Content: strings.NewReader("b")})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestImageStore_ExtensionSospechosa(t *testing.T) {
	store := storage.NewImageStore(afero.NewMemMapFs())
	name, err := store.Save(context.Background(), dto.ImageUpload{Filename: "x.ph p", Content: strings.NewReader("")})
	require.NoError(t, err)
	assert.NotContains(t, name, ".")
}

func TestImageStore_DeleteInexistente(t *testing.T) {
	store := storage.NewImageStore(afero.NewMemMapFs())
	err := store.Delete(context.Background(), "nao-existe.png")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestImageStore_DeleteRechazaRutas(t *testing.T) {
	store := storage.NewImageStore(afero.NewMemMapFs())
	for _, name := range []string{"../etc/passwd", "a/b.png", "..", ""} {
		err := store.Delete(context.Background(), name)
		require.Error(t, err, name)
		assert.False(t, errors.Is(err, fs.ErrNotExist), name)
	}
}
