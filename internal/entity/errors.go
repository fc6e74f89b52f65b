package entity

import "errors"

// Domain errors for words and their persisted records.
var (
	ErrInvalidWordText   = errors.New("invalid word text")
	ErrInvalidDefinition = errors.New("invalid definition")
	ErrNoValidPart       = errors.New("word has no valid part of speech")
	ErrUnknownPart       = errors.New("unknown part of speech")
	ErrMalformedRecord   = errors.New("malformed record")
	ErrWordNotFound      = errors.New("word not found")
)
