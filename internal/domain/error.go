package domain

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrDeliveryFailed  = errors.New("video delivery failed")
	ErrBotNotReady     = errors.New("telegram bot is not ready")
	ErrMissingChannel  = errors.New("source channel is not configured")
)
