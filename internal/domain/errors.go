package domain

import "errors"

var (
	ErrEmptyTarget   = errors.New("empty target")
	ErrTargetTooLong = errors.New("target too long")
)

var (
	ErrQuotaExhausted = errors.New("daily quota exhausted")
	ErrBadPasscode    = errors.New("passcode mismatch")
)

var (
	ErrHistoryNotFound = errors.New("history record not found")
)
