package common

// AuthorizationHeaderName is the HTTP header used to carry the access token
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a client-generated id for request correlation
// in backend logs.
const RequestIDHeaderName = "X-Request-Id"

// LoginRoute is the navigation target emitted when a session is invalid or
// unauthorized for the requested screen.
const LoginRoute = "/login"
