package ports

import (
	"context"

	"github.com/jhoicas/inventario-ai/internal/domain/entity"
)

// ModelInfo describe el adaptador activo (para /api/ai/health y logs).
type ModelInfo struct {
	Provider   string
	Model      string
	Configured bool // false si falta la API key
}

// ChatModel define el puerto de salida hacia el modelo de lenguaje conversacional.
// Cualquier adaptador (Groq, Anthropic, mock) debe implementar esta interfaz.
// turns llega ordenado: primero el prompt de sistema, luego el historial y al final el turno del usuario.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type ChatModel interface {
	Complete(ctx context.Context, turns []entity.Turn) (string, error)
	Info() ModelInfo
}
