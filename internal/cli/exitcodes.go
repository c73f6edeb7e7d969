package cli

import (
	"errors"
	"io/fs"

	"catalogctl/internal/importfile"
	"catalogctl/internal/service"
)

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string {
	return e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

const (
	exitOK         = 0
	exitUnknown    = 1
	exitValidation = 2
	exitUsage      = 3
	exitDB         = 4
	exitDBWrite    = 5
	exitIO         = 6
	exitMigration  = 7
)

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

// classify picks the exit code for err, using fallback for anything that
// is not a validation or input problem
func classify(fallback int, err error) error {
	if err == nil {
		return nil
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return err
	}

	switch {
	case errors.Is(err, importfile.ErrInvalidRecord),
		errors.Is(err, service.ErrInvalidUser),
		errors.Is(err, service.ErrTargetCategoryNotFound),
		errors.Is(err, service.ErrSelfParent):
		return withCode(exitValidation, err)
	case errors.Is(err, importfile.ErrMalformed), errors.Is(err, fs.ErrNotExist), isPathError(err):
		return withCode(exitIO, err)
	}
	return withCode(fallback, err)
}

func isPathError(err error) bool {
	var pe *fs.PathError
	return errors.As(err, &pe)
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUnknown
}
