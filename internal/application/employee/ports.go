package employee

import "github.com/jhoicas/empleados-api/internal/domain/entity"

// AttachmentStore puerto del gestor de fotos de perfil. El caso de uso solo
// maneja referencias opacas; la resolución a disco/URL vive en el adaptador.
type AttachmentStore interface {
	// Save persiste el binario y devuelve su referencia. Rechaza con
	// *domain.RejectedUploadError si viola tamaño o tipo; en ese caso no
	// escribe nada en el almacenamiento.
	Save(data []byte, declaredFilename string) (entity.AttachmentRef, error)
	// Delete es idempotente: borrar una referencia inexistente no es error.
	Delete(ref entity.AttachmentRef) error
	// PublicPath mapea la referencia a la ruta pública servible.
	PublicPath(ref entity.AttachmentRef) string
}
