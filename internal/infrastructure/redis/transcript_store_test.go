package redis_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ai/internal/domain/entity"
	"github.com/jhoicas/inventario-ai/internal/infrastructure/redis"
)

// Requiere un Redis real: REDIS_ADDR=localhost:6379 go test ./internal/infrastructure/redis/...
func TestTranscriptStore_Ventana(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR no definido")
	}
	ctx := context.Background()
	client, err := redis.NewClient(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	defer client.Close()

	store := redis.NewTranscriptStore(client, 3, time.Minute)
	session := fmt.Sprintf("test-%d", time.Now().UnixNano())
	t.Cleanup(func() { client.Del(ctx, "assistant:transcript:"+session) })

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(ctx, session, entity.Turn{Role: entity.RoleUser, Content: fmt.Sprint(i)}))
	}

	turns, err := store.Recent(ctx, session, 0)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "2", turns[0].Content)
	assert.Equal(t, "4", turns[2].Content)

	last, err := store.Recent(ctx, session, 1)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "4", last[0].Content)

	ttl, err := client.TTL(ctx, "assistant:transcript:"+session).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestTranscriptStore_SesionInexistente(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR no definido")
	}
	ctx := context.Background()
	client, err := redis.NewClient(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	defer client.Close()

	turns, err := redis.NewTranscriptStore(client, 3, 0).Recent(ctx, "nadie-"+fmt.Sprint(time.Now().UnixNano()), 10)
	require.NoError(t, err)
	assert.Empty(t, turns)
}
