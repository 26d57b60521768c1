package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ai/internal/application/assistant"
	"github.com/jhoicas/inventario-ai/internal/application/dto"
	"github.com/jhoicas/inventario-ai/internal/domain"
)

// SessionHeader cabecera alternativa para identificar la conversación.
const SessionHeader = "X-Session-ID"

// AssistantHandler maneja los endpoints del asistente de inventario en lenguaje natural.
type AssistantHandler struct {
	orch      *assistant.Orchestrator
	store     string
	startedAt time.Time
}

// NewAssistantHandler construye el handler.
func NewAssistantHandler(orch *assistant.Orchestrator, store string, startedAt time.Time) *AssistantHandler {
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	return &AssistantHandler{orch: orch, store: store, startedAt: startedAt}
}

// Process godoc
// @Summary      Procesar un comando en lenguaje natural
// @Description  Aplica las operaciones que devuelva el modelo y responde con su texto más una línea por operación. La sesión sale de session_id o de X-Session-ID.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcessCommandRequest  true  "command (obligatorio) y session_id (opcional)"
// @Success      200   {object}  dto.AssistantReply
// @Failure      400   {object}  dto.AssistantReply
// @Failure      503   {object}  dto.AssistantReply
// @Router       /api/ai/process [post]
func (h *AssistantHandler) Process(c *fiber.Ctx) error {
	var req dto.ProcessCommandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.AssistantReply{
			Success: false, Message: "cuerpo de la petición inválido",
		})
	}
	session := strings.TrimSpace(req.SessionID)
	if session == "" {
		session = strings.TrimSpace(c.Get(SessionHeader))
	}

	reply, err := h.orch.Process(c.UserContext(), session, req.Command)
	if err != nil {
		if errors.Is(err, domain.ErrPersistence) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.AssistantReply{
				Success: false, Message: reply.Message,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.AssistantReply{
			Success: false, Message: err.Error(),
		})
	}
	return c.JSON(reply)
}

// Health godoc
// @Summary      Estado del asistente
// @Tags         ai
// @Produce      json
// @Success      200  {object}  dto.AIHealthResponse
// @Router       /api/ai/health [get]
func (h *AssistantHandler) Health(c *fiber.Ctx) error {
	info := h.orch.ModelInfo()
	status := "ok"
	if !info.Configured {
		status = "degraded"
	}
	return c.JSON(dto.AIHealthResponse{
		Status:     status,
		Provider:   info.Provider,
		Model:      info.Model,
		Configured: info.Configured,
		Store:      h.store,
		Uptime:     time.Since(h.startedAt).Round(time.Second).String(),
	})
}
