package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-ai/internal/application/ports"
	"github.com/jhoicas/inventario-ai/internal/domain/entity"
)

var _ ports.TranscriptStore = (*TranscriptStore)(nil)

// TranscriptStore memoria conversacional local, una ventana deslizante por sesión.
type TranscriptStore struct {
	mu       sync.Mutex
	window   int
	sessions map[string][]entity.Turn
}

// NewTranscriptStore construye la memoria con la ventana máxima de turnos por sesión.
func NewTranscriptStore(window int) *TranscriptStore {
	if window <= 0 {
		window = 20
	}
	return &TranscriptStore{window: window, sessions: make(map[string][]entity.Turn)}
}

// Recent devuelve hasta limit turnos, del más antiguo al más reciente.
func (s *TranscriptStore) Recent(_ context.Context, sessionID string, limit int) ([]entity.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := s.sessions[sessionID]
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	out := make([]entity.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

// Append agrega turnos y recorta al tamaño de la ventana.
func (s *TranscriptStore) Append(_ context.Context, sessionID string, turns ...entity.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := append(s.sessions[sessionID], turns...)
	if len(all) > s.window {
		all = append([]entity.Turn(nil), all[len(all)-s.window:]...)
	}
	s.sessions[sessionID] = all
	return nil
}
