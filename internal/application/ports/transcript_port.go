package ports

import (
	"context"

	"github.com/jhoicas/inventario-ai/internal/domain/entity"
)

// TranscriptStore memoria conversacional por sesión, acotada a una ventana de turnos.
// Append descarta los turnos más antiguos cuando se supera la ventana.
type TranscriptStore interface {
	Recent(ctx context.Context, sessionID string, limit int) ([]entity.Turn, error)
	Append(ctx context.Context, sessionID string, turns ...entity.Turn) error
}
