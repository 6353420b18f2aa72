package globals

// JwtSecret verifies operator tokens. main replaces it from JWT_SECRET.
var JwtSecret = []byte("change-me")

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const UsernameKey ContextKey = "username"
