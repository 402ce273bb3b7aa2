package core

import "errors"

// Predefined errors returned by Specify operations.
var (
	// ErrNilSpec is returned when a composition or execution call receives a nil specification.
	ErrNilSpec = errors.New("specification is nil")
	// ErrNilConnection is returned when an execution call is made against a nil connection.
	ErrNilConnection = errors.New("database connection is nil")
	// ErrUnorderedPage is returned by FindPage when paging is requested without a sort directive.
	ErrUnorderedPage = errors.New("offset paging requires at least one sort directive")
	// ErrNoRows is returned when a query that expects a row returns no results.
	ErrNoRows = errors.New("no rows in result set")
	// ErrNoTable is returned when a specification has no table and none can be inferred from dest.
	ErrNoTable = errors.New("specification has no table")
	// ErrInvalidModelType is returned when an invalid destination type is provided.
	ErrInvalidModelType = errors.New("invalid model type")
	// ErrUnsupportedDialect is returned when an unsupported database dialect is specified.
	ErrUnsupportedDialect = errors.New("unsupported database dialect")
)

// WrapError wraps an error with additional context message.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
