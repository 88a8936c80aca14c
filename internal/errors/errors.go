package errors

import (
	stderrors "errors"
	"fmt"
)

type Kind string

const (
	InvalidConfig       Kind = "invalid_config"
	NotFound            Kind = "not_found"
	UnidentifiableImage Kind = "unidentifiable_image"
	EmptyImage          Kind = "empty_image"
	ZeroByteFile        Kind = "zero_byte_file"
	Unexpected          Kind = "unexpected"
	Internal            Kind = "internal"
)

type AppError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// KindOf returns the Kind of the outermost AppError in err's chain, or ""
// when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// Cause returns the innermost message of an AppError, without the op/path
// prefix.
func Cause(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr.Err != nil {
		return appErr.Err.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func UserMessage(err error) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return err.Error()
	}
	switch appErr.Kind {
	case InvalidConfig:
		return fmt.Sprintf("Invalid configuration: %v", appErr.Err)
	case NotFound:
		return fmt.Sprintf("Path not found: %s", appErr.Path)
	case UnidentifiableImage:
		return fmt.Sprintf("Cannot identify image file: %s", appErr.Path)
	case EmptyImage:
		return fmt.Sprintf("Image has zero width or height: %s", appErr.Path)
	case ZeroByteFile:
		return fmt.Sprintf("File is empty: %s", appErr.Path)
	default:
		return fmt.Sprintf("Unexpected error: %v", appErr.Err)
	}
}
