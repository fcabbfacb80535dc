package errors

import (
	"errors"
	"fmt"
)

var (
	ErrCorpusUnreadable   = errors.New("corpus unreadable")
	ErrArticleTextMissing = errors.New("article text missing")
	ErrMalformedQuery     = errors.New("malformed query")
	ErrUnknownVariant     = errors.New("unknown search variant")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
)

type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, message string) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: message,
	}
}

func Newf(sentinel error, format string, args ...any) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: fmt.Sprintf(format, args...),
	}
}

// Kind returns a stable, low-cardinality label for err, suitable for metric
// labels and structured log fields.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrCorpusUnreadable):
		return "corpus_unreadable"
	case errors.Is(err, ErrArticleTextMissing):
		return "article_text_missing"
	case errors.Is(err, ErrMalformedQuery):
		return "malformed_query"
	case errors.Is(err, ErrUnknownVariant):
		return "unknown_variant"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}
