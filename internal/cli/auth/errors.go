package auth

// defaultLoginMessage is shown when the server rejects a login without a
// usable detail message.
const defaultLoginMessage = "login failed, please check your username and password"

// unreachableMessage is shown when the login request never got a response.
// Distinct from defaultLoginMessage: a connectivity problem must not read
// as bad credentials.
const unreachableMessage = "could not reach the server, please check your connection"

// AuthenticationError is an explicit login rejection from the server.
// The message is extracted from the server's error payload and is meant to
// be shown to the user as-is.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}
