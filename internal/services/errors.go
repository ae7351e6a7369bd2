package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("not allowed for this account")
	ErrAlreadyOffered = errors.New("you have already submitted an offer for this need")
	ErrOfferClosed    = errors.New("offer has already been accepted or rejected")
	ErrNoProfile      = errors.New("complete your profile first")
)

// ValidationError is a client-side input problem caught before any store call.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Msg) }

func invalid(field, msg string) error { return &ValidationError{Field: field, Msg: msg} }
