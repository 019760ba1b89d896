package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/opst/cloudconsole/pkg/rest"
)

type Verbose interface {
	Verbose() string
}

// CUIError is an error to be shown to users of the command line.
//
// Error() is a short message for everyday use,
// and Verbose() adds the context and the chain of causes.
type CUIError interface {
	error
	Verbose
}

type cuierror struct {
	summary string
	details []string
	context string
	cause   error
}

func (ce *cuierror) Unwrap() error {
	return ce.cause
}

func (ce *cuierror) Error() string {
	if len(ce.details) == 0 {
		return ce.summary
	}
	b := new(strings.Builder)
	b.WriteString(ce.summary)
	for _, d := range ce.details {
		b.WriteString("\n  - ")
		b.WriteString(d)
	}
	return b.String()
}

func (ce *cuierror) Verbose() string {
	b := new(strings.Builder)
	b.WriteString(ce.Error())
	if ce.context != "" {
		fmt.Fprintf(b, "\n (%s) ", ce.context)
	}

	var cause string
	switch c := ce.cause.(type) {
	case nil:
		return b.String()
	case Verbose:
		cause = c.Verbose()
	default:
		cause = c.Error()
	}
	b.WriteString("\ncaused by: ")
	b.WriteString(cause)
	return b.String()
}

type CuiErrorOption func(cerr *cuierror) *cuierror

func NewCuiError(summary string, options ...CuiErrorOption) CUIError {
	err := &cuierror{summary: summary}
	for _, o := range options {
		err = o(err)
	}
	return err
}

// WithVerbose sets a context shown only in Verbose().
func WithVerbose(context string) CuiErrorOption {
	return func(cerr *cuierror) *cuierror {
		cerr.context = context
		return cerr
	}
}

// WithDetail lists lines below the summary. Empty lines are skipped.
func WithDetail(lines ...string) CuiErrorOption {
	return func(cerr *cuierror) *cuierror {
		for _, l := range lines {
			if l = strings.TrimSpace(l); l != "" {
				cerr.details = append(cerr.details, l)
			}
		}
		return cerr
	}
}

func WithCause(err error) CuiErrorOption {
	return func(cerr *cuierror) *cuierror {
		cerr.cause = err
		return cerr
	}
}

// FromAPI wraps err as CUIError.
//
// When err is a *rest.APIError, messages from the platform are listed below the summary.
func FromAPI(summary string, err error) CUIError {
	options := []CuiErrorOption{WithCause(err)}

	ae := new(rest.APIError)
	if errors.As(err, &ae) {
		options = append(
			options,
			WithVerbose(fmt.Sprintf("status code = %d, %s %s", ae.StatusCode, ae.Method, ae.Path)),
			WithDetail(ae.Messages()...),
		)
	}
	return NewCuiError(summary, options...)
}
