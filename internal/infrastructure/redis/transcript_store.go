// Package redis implementa la memoria conversacional compartida entre instancias.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-ai/internal/application/ports"
	"github.com/jhoicas/inventario-ai/internal/domain/entity"
)

var _ ports.TranscriptStore = (*TranscriptStore)(nil)

const defaultKeyPrefix = "assistant:transcript:"

// TranscriptStore guarda cada sesión como una lista Redis de turnos JSON.
// La lista se recorta a la ventana en cada escritura y expira tras ttl sin actividad.
type TranscriptStore struct {
	client    goredis.UniversalClient
	keyPrefix string
	window    int
	ttl       time.Duration
}

// NewClient abre la conexión y verifica que responda.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}
	return client, nil
}

// NewTranscriptStore construye el adaptador sobre un cliente existente.
func NewTranscriptStore(client goredis.UniversalClient, window int, ttl time.Duration) *TranscriptStore {
	if window <= 0 {
		window = 20
	}
	return &TranscriptStore{client: client, keyPrefix: defaultKeyPrefix, window: window, ttl: ttl}
}

func (s *TranscriptStore) key(sessionID string) string {
	return s.keyPrefix + sessionID
}

// Recent devuelve hasta limit turnos, del más antiguo al más reciente.
func (s *TranscriptStore) Recent(ctx context.Context, sessionID string, limit int) ([]entity.Turn, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}
	raws, err := s.client.LRange(ctx, s.key(sessionID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("leer historial: %w", err)
	}
	turns := make([]entity.Turn, 0, len(raws))
	for _, raw := range raws {
		var t entity.Turn
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			continue
		}
		turns = append(turns, t)
	}
	return turns, nil
}

// Append agrega los turnos, recorta a la ventana y renueva la expiración en un solo pipeline.
func (s *TranscriptStore) Append(ctx context.Context, sessionID string, turns ...entity.Turn) error {
	if len(turns) == 0 {
		return nil
	}
	values := make([]any, 0, len(turns))
	for _, t := range turns {
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("serializar turno: %w", err)
		}
		values = append(values, b)
	}

	key := s.key(sessionID)
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.RPush(ctx, key, values...)
		pipe.LTrim(ctx, key, int64(-s.window), -1)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("guardar historial: %w", err)
	}
	return nil
}
