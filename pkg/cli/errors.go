package cli

import "errors"

// Common CLI errors
var (
	ErrNoSchema      = errors.New("no schema configured - pass --schema or run: querygen init")
	ErrNoFields      = errors.New("no root fields to generate")
	ErrConfigExists  = errors.New("config file already exists - use --force to overwrite")
	ErrUnknownOutput = errors.New("unknown output format, expected one of graphql, json, yaml")
)

// exitError fails the command without printing an error line; the command
// has already reported the failure itself.
type exitError struct {
	msg    string
	silent bool
}

func (e *exitError) Error() string { return e.msg }
