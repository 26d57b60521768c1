// Package ai contiene los adaptadores hacia los proveedores de modelos de lenguaje.
package ai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/inventario-ai/internal/application/ports"
	"github.com/jhoicas/inventario-ai/internal/domain"
	"github.com/jhoicas/inventario-ai/pkg/config"
)

// Respuesta máxima leída del proveedor.
const maxResponseBytes = 256 * 1024

// newHTTPClient timeout de red de 25 s; el orquestador impone además su context.WithTimeout.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 25 * time.Second}
}

// doRequest ejecuta req y devuelve estado y cuerpo acotado.
func doRequest(ctx context.Context, client *http.Client, req *http.Request) (int, []byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return 0, nil, fmt.Errorf("%w: llamada HTTP fallida: %w", domain.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}
	return resp.StatusCode, raw, nil
}

// NewChatModel elige el adaptador según AI_PROVIDER.
func NewChatModel(cfg config.AIConfig) ports.ChatModel {
	if cfg.Provider == "anthropic" {
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.Temperature)
	}
	return NewGroqService(cfg.GroqAPIKey, cfg.GroqModel, cfg.GroqBaseURL, cfg.Temperature)
}
