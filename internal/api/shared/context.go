package shared

// ContextKey is the type for context values set by the API layer.
type ContextKey string

// Context keys for request-scoped values
const (
	// UserIDContextKey is the context key for the authenticated user's ID.
	UserIDContextKey ContextKey = "userID"

	// UserEmailContextKey is the context key for the authenticated user's
	// email, the identity that task delivery addresses are resolved to.
	UserEmailContextKey ContextKey = "userEmail"
)
