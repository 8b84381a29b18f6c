package configtree

import (
	"fmt"
	"strings"
)

// SyntaxError reports malformed configuration text, citing the position of
// the offending token.
type SyntaxError struct {
	Msg    string
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("syntax error: %s", e.Msg)
}

// NotFoundError reports a path that does not resolve to a node where
// existence is required.
type NotFoundError struct {
	Path []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("path [%s] doesn't exist", strings.Join(e.Path, " "))
}

// ConflictError reports a rename or copy whose target name already exists.
type ConflictError struct {
	Path []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("path [%s] already exists", strings.Join(e.Path, " "))
}

// ValidationError reports a malformed argument, such as an empty path where
// a node reference is required. It is raised before any tree access.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// EngineError carries a diagnostic message from the tree engine for failures
// that are not a simple missing path or name conflict.
type EngineError struct {
	Msg string
}

func (e *EngineError) Error() string {
	return e.Msg
}

func errEmptyPath(op string) error {
	return &ValidationError{Msg: fmt.Sprintf("%s: empty path", op)}
}
