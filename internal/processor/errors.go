package processor

import "errors"

// Errors returned for conditions that the running program can not recover from.
var (
	ErrStackOverflow   = errors.New("stack overflow")
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrMemoryBounds    = errors.New("memory access out of bounds")
	ErrProgramTooLarge = errors.New("program too large")
	ErrInvalidKey      = errors.New("invalid key")
)
