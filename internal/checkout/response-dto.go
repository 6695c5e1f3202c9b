package checkout

// SessionResponse is the full checkout state returned after every step
// operation. FieldErrors carries validation failures instead of an HTTP
// error so clients can render them inline.
type SessionResponse struct {
	SessionID   string            `json:"session_id"`
	CurrentStep Step              `json:"current_step"`
	Steps       []Step            `json:"steps"`
	Payload     Payload           `json:"payload"`
	Status      Status            `json:"status"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	Message     string            `json:"message,omitempty"`
}
