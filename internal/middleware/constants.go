package middleware

// Context keys for middleware communication
type contextKey string

const (
	UserIDKey contextKey = "user_id"
)
