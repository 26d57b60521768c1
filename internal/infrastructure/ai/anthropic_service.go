package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jhoicas/inventario-ai/internal/application/ports"
	"github.com/jhoicas/inventario-ai/internal/domain"
	"github.com/jhoicas/inventario-ai/internal/domain/entity"
)

// Verificar en tiempo de compilación que AnthropicService implementa ChatModel.
var _ ports.ChatModel = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
)

// AnthropicService adaptador que implementa ChatModel usando la API REST de Anthropic (Claude).
// Usa net/http de la librería estándar de Go; no requiere el SDK oficial.
type AnthropicService struct {
	apiKey      string
	model       string
	url         string
	temperature float64
	httpClient  *http.Client
}

// NewAnthropicService construye el adaptador.
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewAnthropicService(apiKey, model string, temperature float64) *AnthropicService {
	return &AnthropicService{
		apiKey:      apiKey,
		model:       model,
		url:         anthropicMessagesURL,
		temperature: temperature,
		httpClient:  newHTTPClient(),
	}
}

// WithURL reemplaza el endpoint (tests, proxies).
func (s *AnthropicService) WithURL(url string) *AnthropicService {
	s.url = url
	return s
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Info implementa ports.ChatModel.
func (s *AnthropicService) Info() ports.ModelInfo {
	return ports.ModelInfo{Provider: "anthropic", Model: s.model, Configured: s.apiKey != ""}
}

// Complete envía la conversación a Claude. La API recibe el prompt de sistema
// aparte, así que los turnos de sistema se concatenan en ese campo.
func (s *AnthropicService) Complete(ctx context.Context, turns []entity.Turn) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%w: ANTHROPIC_API_KEY no configurado", domain.ErrModelUnavailable)
	}

	var system []string
	messages := make([]anthropicMessage, 0, len(turns))
	for _, t := range turns {
		if t.Role == entity.RoleSystem {
			system = append(system, t.Content)
			continue
		}
		messages = append(messages, anthropicMessage{Role: t.Role, Content: t.Content})
	}

	body, err := json.Marshal(anthropicRequest{
		Model:       s.model,
		MaxTokens:   1024,
		System:      strings.Join(system, "\n\n"),
		Temperature: s.temperature,
		Messages:    messages,
	})
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	status, rawBody, err := doRequest(ctx, s.httpClient, req)
	if err != nil {
		return "", err
	}

	var anthResp anthropicResponse
	if status != http.StatusOK {
		if jsonErr := json.Unmarshal(rawBody, &anthResp); jsonErr == nil && anthResp.Error != nil {
			return "", fmt.Errorf("%w: Anthropic error (%s): %s", domain.ErrModelUnavailable, anthResp.Error.Type, anthResp.Error.Message)
		}
		return "", fmt.Errorf("%w: Anthropic HTTP %d: %s", domain.ErrModelUnavailable, status, string(rawBody))
	}
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}

	var sb strings.Builder
	for _, c := range anthResp.Content {
		if c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
