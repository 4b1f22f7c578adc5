package constants

import "errors"

// Token errors.
var (
	ErrNoAccessTokenInResponse = errors.New("token response carried no access token")
	ErrNoCredentials           = errors.New("no credentials configured")
)

// Event publishing errors.
var (
	ErrSubjectRequired = errors.New("event subject is required")
	ErrNatsURLRequired = errors.New("NATS server URL is required")
)
