package constant

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// Context keys
const (
	CtxKeyUserExtID ContextKey = "user_ext_id"
	CtxKeyAuthUser  ContextKey = "auth_user"
)

// Cookie names set on login and refresh
const (
	CookieAccessToken  = "accessToken"
	CookieRefreshToken = "refreshToken"
)
