// Package storage guarda las imágenes de productos en un sistema de archivos afero
// (disco bajo el directorio de uploads en producción, memoria en tests).
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/jhoicas/estoque-api/internal/application/catalog"
	"github.com/jhoicas/estoque-api/internal/application/dto"
)

var _ catalog.ImageStore = (*ImageStore)(nil)

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// ImageStore implementa catalog.ImageStore. Los archivos viven en la raíz del Fs.
type ImageStore struct {
	fs afero.Fs
}

// NewImageStore construye el store sobre un Fs arbitrario.
func NewImageStore(fs afero.Fs) *ImageStore {
	return &ImageStore{fs: fs}
}

// NewDiskImageStore crea (si falta) el directorio de uploads y lo usa como raíz.
func NewDiskImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return NewImageStore(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

// Save escribe el contenido con un nombre UUID que conserva la extensión original.
func (s *ImageStore) Save(ctx context.Context, upload dto.ImageUpload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := uuid.NewString() + safeExt(upload.Filename)

	f, err := s.fs.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("crear archivo: %w", err)
	}
	if _, err := io.Copy(f, upload.Content); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(name)
		return "", fmt.Errorf("escribir archivo: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(name)
		return "", fmt.Errorf("cerrar archivo: %w", err)
	}
	return name, nil
}

// Delete borra el archivo. Un archivo inexistente devuelve un error que cumple errors.Is(err, fs.ErrNotExist).
func (s *ImageStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validName(name) {
		return fmt.Errorf("nombre de imagen inválido %q", name)
	}
	return s.fs.Remove(name)
}

// Exists indica si el archivo existe.
func (s *ImageStore) Exists(name string) (bool, error) {
	if !validName(name) {
		return false, nil
	}
	return afero.Exists(s.fs, name)
}

func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if !extPattern.MatchString(ext) {
		return ""
	}
	return ext
}

// validName rechaza rutas: solo nombres planos dentro del directorio de uploads.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}
