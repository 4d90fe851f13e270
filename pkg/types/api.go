package types

// ChatRequest is the payload for POST /chat.
type ChatRequest struct {
	// Optional model identifier. If empty, the resident model (or the server
	// default) is used.
	// example: tinyllama.Q4_K_M.gguf
	Model string `json:"model,omitempty" example:"tinyllama.Q4_K_M.gguf"`
	// Role of the submitted turn. Defaults to "user" when omitted.
	// example: user
	Role Role `json:"role,omitempty" example:"user"`
	// Text of the turn to append to the conversation.
	// example: Write a haiku about the ocean.
	Text string `json:"text" example:"Write a haiku about the ocean."`
}

// LoadRequest is the payload for POST /load.
type LoadRequest struct {
	// Model identifier to load into memory.
	// example: tinyllama.Q4_K_M.gguf
	Model string `json:"model" example:"tinyllama.Q4_K_M.gguf"`
}

// ChatFragment is one NDJSON line of a streaming chat response.
type ChatFragment struct {
	// Decoded text fragment, in emission order.
	// example: Hel
	Fragment string `json:"fragment" example:"Hel"`
}

// ChatDone is the terminal NDJSON line of a streaming chat response.
type ChatDone struct {
	// Always true; marks the end of the stream.
	Done bool `json:"done"`
	// Why the generation stopped (stop, context_exhausted, canceled,
	// decode_error).
	// example: stop
	FinishReason string `json:"finish_reason" example:"stop"`
	// Error detail when finish_reason is decode_error.
	Error string `json:"error,omitempty"`
}

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	// List of available models.
	Models []Model `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Overall state (unloaded, loading, ready, generating).
	// example: ready
	State string `json:"state" example:"ready"`
	// Identifier of the resident model, empty when nothing is loaded.
	// example: tinyllama.Q4_K_M.gguf
	ResidentModel string `json:"resident_model,omitempty" example:"tinyllama.Q4_K_M.gguf"`
	// Context cells consumed so far by the resident session.
	// example: 512
	ContextUsed int `json:"context_used" example:"512"`
	// Context capacity in tokens of the resident session.
	// example: 2048
	ContextCapacity int `json:"context_capacity" example:"2048"`
	// Number of turns in the resident conversation log.
	// example: 4
	Turns int `json:"turns" example:"4"`
	// Whether a generation is currently in flight.
	// example: false
	Generating bool `json:"generating" example:"false"`
	// Last error observed by the manager (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the process in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Total number of model loads since startup.
	// example: 3
	LoadsTotal uint64 `json:"loads_total" example:"3"`
	// Total number of unloads since startup.
	// example: 2
	UnloadsTotal uint64 `json:"unloads_total" example:"2"`
}
