package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrSessionClosed    = errors.New("session closed")
	ErrUnknownField     = errors.New("unknown field")
	ErrUnknownVariant   = errors.New("unknown variant")
	ErrWordLimit        = errors.New("word limit exceeded")
	ErrUploadTooLarge   = errors.New("upload too large")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrGateClosed       = errors.New("customizations incomplete")
)
