// Package web defines common components for a web application.
package web

// Response holds the common response envelope for all APIs.
type Response struct {
	AccessToken          string `json:"access_token,omitempty"`
	AccessTokenExpiresAt string `json:"access_token_expires_at,omitempty"`
	Data                 any    `json:"data,omitempty"`
	Error                string `json:"error,omitempty"`
}

// Error wraps the given err into the common response envelope.
func Error(err error) Response {
	return Response{Error: err.Error()}
}
