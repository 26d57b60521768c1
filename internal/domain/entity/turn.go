package entity

import "time"

// Roles de un turno de conversación.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn es un mensaje de la transcripción que se envía al modelo de lenguaje.
type Turn struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}
