package dto

// ProcessCommandRequest entrada de /api/ai/process.
type ProcessCommandRequest struct {
	Command   string `json:"command"`
	SessionID string `json:"session_id"`
}

// AssistantReply respuesta del asistente: prosa del modelo + una línea por intención.
type AssistantReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AIHealthResponse estado del backend del asistente.
type AIHealthResponse struct {
	Status     string `json:"status"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	Configured bool   `json:"configured"`
	Store      string `json:"store"`
	Uptime     string `json:"uptime"`
}
