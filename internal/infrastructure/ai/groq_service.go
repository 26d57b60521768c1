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

// Verificar en tiempo de compilación que GroqService implementa ChatModel.
var _ ports.ChatModel = (*GroqService)(nil)

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// GroqService adaptador para APIs compatibles con OpenAI chat completions (Groq por defecto).
// Usa únicamente la librería estándar de Go (net/http) para no añadir dependencias externas.
type GroqService struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	httpClient  *http.Client
}

// NewGroqService construye el adaptador. model suele ser "llama-3.3-70b-versatile".
// baseURL vacío usa el endpoint público de Groq.
func NewGroqService(apiKey, model, baseURL string, temperature float64) *GroqService {
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	return &GroqService{
		apiKey:      apiKey,
		model:       model,
		baseURL:     strings.TrimRight(baseURL, "/"),
		temperature: temperature,
		httpClient:  newHTTPClient(),
	}
}

// ── Estructuras internas del protocolo chat completions ──────────────────────

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Info implementa ports.ChatModel.
func (s *GroqService) Info() ports.ModelInfo {
	return ports.ModelInfo{Provider: "groq", Model: s.model, Configured: s.apiKey != ""}
}

// Complete envía los turnos tal cual (sistema incluido) y devuelve el texto de la primera opción.
func (s *GroqService) Complete(ctx context.Context, turns []entity.Turn) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%w: GROQ_API_KEY no configurado", domain.ErrModelUnavailable)
	}

	messages := make([]chatMessage, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, chatMessage{Role: t.Role, Content: t.Content})
	}
	body, err := json.Marshal(chatRequest{Model: s.model, Messages: messages, Temperature: s.temperature})
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	status, rawBody, err := doRequest(ctx, s.httpClient, req)
	if err != nil {
		return "", err
	}

	var chatResp chatResponse
	if status != http.StatusOK {
		if jsonErr := json.Unmarshal(rawBody, &chatResp); jsonErr == nil && chatResp.Error != nil {
			return "", fmt.Errorf("%w: Groq error (%s): %s", domain.ErrModelUnavailable, chatResp.Error.Type, chatResp.Error.Message)
		}
		return "", fmt.Errorf("%w: Groq HTTP %d: %s", domain.ErrModelUnavailable, status, string(rawBody))
	}
	if err := json.Unmarshal(rawBody, &chatResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Groq: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
