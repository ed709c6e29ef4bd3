// Package service implements the domain logic over the database and
// publishes change notifications to the websocket hub.
package service

import "errors"

// Sentinel errors making up the response taxonomy. Controllers map these to
// status codes; anything else is a domain-rule violation answered with 400.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternal           = errors.New("internal error")
)
