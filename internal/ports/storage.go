package ports

import (
	"context"

	"github.com/alejandrodnm/top5sim/internal/domain"
)

// Storage archiva cada ejecución del refresco de datos.
type Storage interface {
	// SaveRun persiste el resumen de un refresco y el dataset generado.
	SaveRun(ctx context.Context, run domain.RefreshRun) error

	// LatestRun devuelve el refresco más reciente. ok=false si no hay ninguno.
	LatestRun(ctx context.Context) (domain.RefreshRun, bool, error)

	// ListRuns devuelve los últimos refrescos, del más nuevo al más viejo.
	ListRuns(ctx context.Context, limit int) ([]domain.RefreshRun, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
