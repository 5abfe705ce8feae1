package api

import "time"

// ChatRequest is the body for the streaming reply endpoint. UserID is
// omitted when the caller is not authenticated.
type ChatRequest struct {
	Instruction string  `json:"instruction"`
	SessionID   string  `json:"session_id"`
	UserID      *string `json:"user_id"`
}

// User is the public user record returned by the service.
type User struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email,omitempty"`
	DisplayName string     `json:"display_name,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Credentials is the body for login requests.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body for account creation.
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// Session is one stored conversation.
type Session struct {
	ID         string    `json:"id"`
	SessionKey string    `json:"session_key"`
	UserID     string    `json:"user_id"`
	PersonaID  string    `json:"persona_id,omitempty"`
	LastMsg    string    `json:"last_msg,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Message is one stored chat message within a session.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Persona is a stored tutoring persona.
type Persona struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Name      string         `json:"name"`
	Tags      string         `json:"tags,omitempty"`
	Profile   map[string]any `json:"profile,omitempty"`
	IsDefault bool           `json:"is_default"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// PersonaCreate is the body for creating a persona.
type PersonaCreate struct {
	Name      string         `json:"name"`
	Tags      string         `json:"tags,omitempty"`
	Profile   map[string]any `json:"profile,omitempty"`
	IsDefault bool           `json:"is_default"`
}

// PersonaUpdate is the body for updating a persona. Nil fields are
// left unchanged by the server.
type PersonaUpdate struct {
	Name      *string        `json:"name,omitempty"`
	Tags      *string        `json:"tags,omitempty"`
	Profile   map[string]any `json:"profile,omitempty"`
	IsDefault *bool          `json:"is_default,omitempty"`
}

// FileInfo is one uploaded file record.
type FileInfo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id,omitempty"`
	FileURL   string    `json:"file_url"`
	FileType  string    `json:"file_type"`
	FileName  string    `json:"file_name"`
	FileSize  int64     `json:"file_size"`
	MimeType  string    `json:"mime_type"`
	Version   int       `json:"version"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FileStats is the aggregate returned by the file stats endpoint.
type FileStats struct {
	TotalFiles int64          `json:"total_files"`
	TotalSize  int64          `json:"total_size"`
	ByType     map[string]int `json:"by_type,omitempty"`
}

// ErrorResponse is the service's error body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
