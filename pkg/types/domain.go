package types

// Model describes a discoverable model file on disk.
type Model struct {
	// Stable identifier for the model (the file name, extension included).
	// example: tinyllama.Q4_K_M.gguf
	ID string `json:"id" example:"tinyllama.Q4_K_M.gguf"`
	// Human-friendly name.
	// example: tinyllama.Q4_K_M.gguf
	Name string `json:"name" example:"tinyllama.Q4_K_M.gguf"`
	// Absolute path to the model file on disk.
	// example: /home/user/models/tinyllama.Q4_K_M.gguf
	Path string `json:"path" example:"/home/user/models/tinyllama.Q4_K_M.gguf"`
	// File size in bytes.
	// example: 1073741824
	SizeBytes int64 `json:"size_bytes" example:"1073741824"`
	// Human-readable size in GB with two decimals.
	// example: 1.00
	Size string `json:"size" example:"1.00"`
}

// Role identifies the author of a chat turn. It is a closed set; prompt
// rendering rejects anything outside it.
type Role string

const (
	RoleUser      Role = "user"
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleSystem, RoleAssistant:
		return true
	}
	return false
}

// ChatTurn is one entry of the conversation log. Turns are append-only and
// their insertion order defines the prompt structure.
type ChatTurn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
