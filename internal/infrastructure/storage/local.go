// Package storage implementa el gestor de fotos de perfil sobre disco local.
// Los binarios se sirven estáticamente bajo un prefijo público fijo.
package storage

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/empleados-api/internal/application/employee"
	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
)

// MaxUploadSize límite de tamaño de una foto de perfil (5 MiB).
const MaxUploadSize = 5 << 20

var allowedExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

var _ employee.AttachmentStore = (*LocalStore)(nil)

// LocalStore guarda los binarios en un directorio y los referencia por un
// nombre generado (timestamp + sufijo aleatorio + extensión original), con
// lo que dos subidas concurrentes nunca colisionan.
type LocalStore struct {
	dir          string
	publicPrefix string
}

// NewLocalStore crea el directorio si no existe y devuelve el almacén.
func NewLocalStore(dir, publicPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de adjuntos: %w", err)
	}
	return &LocalStore{dir: dir, publicPrefix: publicPrefix}, nil
}

// Dir devuelve el directorio donde se escriben los binarios, para montarlo
// como raíz del prefijo estático.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save valida tamaño y tipo, y solo entonces escribe el binario a disco.
// Un rechazo no deja nada escrito.
func (s *LocalStore) Save(data []byte, declaredFilename string) (entity.AttachmentRef, error) {
	if len(data) > MaxUploadSize {
		return entity.AttachmentRef{}, &domain.RejectedUploadError{Reason: "File size must be less than 5MB"}
	}
	ext := strings.ToLower(filepath.Ext(declaredFilename))
	if !allowedExts[ext] || !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return entity.AttachmentRef{}, &domain.RejectedUploadError{Reason: "Only jpeg, jpg, png and gif files are allowed"}
	}
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString(), ext)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return entity.AttachmentRef{}, fmt.Errorf("guardar adjunto: %w", err)
	}
	return entity.AttachmentRef{Key: name}, nil
}

// Delete borra el binario referenciado. Idempotente: borrar algo que ya no
// existe no es error.
func (s *LocalStore) Delete(ref entity.AttachmentRef) error {
	if ref.IsZero() {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, ref.Key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("eliminar adjunto: %w", err)
	}
	return nil
}

// PublicPath mapea la referencia a su ruta pública relativa. Nunca expone la
// ubicación real en disco.
func (s *LocalStore) PublicPath(ref entity.AttachmentRef) string {
	if ref.IsZero() {
		return ""
	}
	return path.Join(s.publicPrefix, ref.Key)
}
