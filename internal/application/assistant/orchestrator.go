package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/inventario-ai/internal/application/dto"
	"github.com/jhoicas/inventario-ai/internal/application/ports"
	"github.com/jhoicas/inventario-ai/internal/domain/entity"
	"github.com/jhoicas/inventario-ai/pkg/logger"
)

// Mensajes fijos del asistente.
const (
	MsgEmptyCommand     = "Say something first 😅"
	MsgModelUnavailable = "AI connection issue — check the language model configuration."
	MsgEmptyModelReply  = "Hmm, I didn't get that 🤔"
)

// DefaultSessionID sesión usada cuando el cliente no envía una.
const DefaultSessionID = "default"

// Options parámetros del orquestador. Los ceros toman los valores por defecto.
type Options struct {
	Timeout time.Duration // límite de la llamada al modelo (20 s)
	Window  int           // turnos de historial enviados al modelo (20)
}

// Orchestrator une el modelo de lenguaje, la memoria conversacional y el motor de intenciones.
// Aplica un timeout a cada llamada al modelo para que una latencia externa no
// retenga el goroutine de la petición.
type Orchestrator struct {
	llm         ports.ChatModel
	transcripts ports.TranscriptStore
	executor    *Executor
	metrics     ports.AssistantMetrics
	log         *logger.Logger
	timeout     time.Duration
	window      int
}

// NewOrchestrator construye el orquestador inyectando sus puertos.
func NewOrchestrator(
	llm ports.ChatModel,
	transcripts ports.TranscriptStore,
	executor *Executor,
	metrics ports.AssistantMetrics,
	log *logger.Logger,
	opts Options,
) *Orchestrator {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.Window <= 0 {
		opts.Window = 20
	}
	return &Orchestrator{
		llm:         llm,
		transcripts: transcripts,
		executor:    executor,
		metrics:     metrics,
		log:         log.Component("orchestrator"),
		timeout:     opts.Timeout,
		window:      opts.Window,
	}
}

// ModelInfo expone el adaptador activo.
func (o *Orchestrator) ModelInfo() ports.ModelInfo {
	return o.llm.Info()
}

// Process atiende un comando del usuario. El error solo es no nulo ante una
// falla de persistencia (domain.ErrPersistence); la respuesta viene igualmente
// con las líneas ya producidas.
func (o *Orchestrator) Process(ctx context.Context, sessionID, command string) (*dto.AssistantReply, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return &dto.AssistantReply{Success: false, Message: MsgEmptyCommand}, nil
	}
	if sessionID = strings.TrimSpace(sessionID); sessionID == "" {
		sessionID = DefaultSessionID
	}

	history, err := o.transcripts.Recent(ctx, sessionID, o.window)
	if err != nil {
		o.log.Warn().Err(err).Str("session", sessionID).Msg("no se pudo leer el historial; se continúa sin contexto")
		history = nil
	}

	userTurn := entity.Turn{Role: entity.RoleUser, Content: command, At: time.Now().UTC()}
	text, err := o.complete(ctx, buildTurns(history, userTurn))
	if err != nil {
		o.log.Error().Err(err).Str("session", sessionID).Msg("llamada al modelo falló")
		return &dto.AssistantReply{Success: true, Message: MsgModelUnavailable}, nil
	}
	if strings.TrimSpace(text) == "" {
		text = MsgEmptyModelReply
	}

	parsed, perr := ParseReply(text)
	if perr != nil {
		o.log.Warn().Err(perr).Str("session", sessionID).Msg("lote del modelo descartado")
	}

	assistantTurn := entity.Turn{Role: entity.RoleAssistant, Content: parsed.Prose, At: time.Now().UTC()}
	if err := o.transcripts.Append(ctx, sessionID, userTurn, assistantTurn); err != nil {
		o.log.Warn().Err(err).Str("session", sessionID).Msg("no se pudo guardar el historial")
	}

	if !parsed.HasBatch {
		return &dto.AssistantReply{Success: true, Message: text}, nil
	}
	if perr != nil || len(parsed.Intents) == 0 {
		return &dto.AssistantReply{Success: true, Message: parsed.Prose}, nil
	}

	lines, execErr := o.executor.ExecuteBatch(ctx, parsed.Intents)
	reply := &dto.AssistantReply{Success: true, Message: stitch(parsed.Prose, lines)}
	if execErr != nil {
		return reply, execErr
	}
	return reply, nil
}

func (o *Orchestrator) complete(ctx context.Context, turns []entity.Turn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	info := o.llm.Info()
	start := time.Now()
	text, err := o.llm.Complete(ctx, turns)
	outcome := "ok"
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		outcome = "timeout"
	case err != nil:
		outcome = "error"
	}
	o.metrics.ObserveModelCall(info.Provider, outcome, time.Since(start))
	return text, err
}

func stitch(prose string, lines []string) string {
	body := strings.Join(lines, "\n")
	if prose == "" {
		return body
	}
	return prose + "\n\n" + body
}
