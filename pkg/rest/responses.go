package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	apierr "github.com/opst/cloudconsole/pkg/api/types/errors"
)

// ErrNotAList is returned when a list endpoint responds with something not a JSON array.
var ErrNotAList = errors.New("response is not a list")

// ErrUnexpectedResponse is returned when a successful response cannot be decoded.
var ErrUnexpectedResponse = errors.New("unexpected response")

// APIError is an error responded by the backend.
type APIError struct {
	// Title describes what was failed.
	Title string

	StatusCode int
	Method     string
	Path       string

	// Body is the error body, when the response has the shape of {"errors": [...]}.
	Body *apierr.ErrorResponse

	// Raw is the response body as it is.
	Raw []byte
}

func (e *APIError) Error() string {
	title := e.Title
	if title == "" {
		title = statusCodeRange(e.StatusCode).String()
	}
	title = fmt.Sprintf("%s (status code = %d, %s %s)", title, e.StatusCode, e.Method, e.Path)

	if e.Body != nil {
		if msgs := e.Body.Messages(); 0 < len(msgs) {
			return title + ": " + strings.Join(msgs, "; ")
		}
	}
	if raw := strings.TrimSpace(string(e.Raw)); raw != "" {
		return title + ": " + raw
	}
	return title + ": " + http.StatusText(e.StatusCode)
}

// Messages returns messages which should be shown to users.
//
// They are errors[].msg of the error body if it has, or the raw body.
func (e *APIError) Messages() []string {
	if e.Body != nil {
		if msgs := e.Body.Messages(); 0 < len(msgs) {
			return msgs
		}
	}
	if raw := strings.TrimSpace(string(e.Raw)); raw != "" {
		return []string{raw}
	}
	return []string{http.StatusText(e.StatusCode)}
}

// IsNotFound reports whether err is an APIError with 404 Not Found.
func IsNotFound(err error) bool {
	ae := new(APIError)
	if !errors.As(err, &ae) {
		return false
	}
	return ae.StatusCode == http.StatusNotFound
}

// StatusCodeOf err, when it is APIError. Otherwise, 0.
func StatusCodeOf(err error) int {
	ae := new(APIError)
	if !errors.As(err, &ae) {
		return 0
	}
	return ae.StatusCode
}

type MessageFor map[StatusCodeRange]string

// build APIError from non-2xx response.
func newAPIError(resp *http.Response, messageFor MessageFor) error {
	scr := StatusCodeRangeOf(resp)
	message, ok := messageFor[scr]
	if !ok {
		message = scr.String()
	}

	ae := &APIError{
		Title:      message,
		StatusCode: resp.StatusCode,
	}
	if resp.Request != nil {
		ae.Method = resp.Request.Method
		ae.Path = resp.Request.URL.Path
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w (cannot read server message: %w)", ae, err)
	}
	ae.Raw = body

	er := new(apierr.ErrorResponse)
	if err := json.Unmarshal(body, er); err == nil {
		ae.Body = er
	}
	return ae
}

// unmarshal http response which has json content.
//
// args:
//   - resp: http response to be processed.
//   - v: value which response should be.
//   - messageFor: title of error message for HTTP status code range.
//
// return:
//
//	error if...
//	- can not read response body
//	- response body is not shaped of v
//	- status code is not in 2xx (as *APIError)
//
// Empty body is accepted, and leaves v as it is.
func unmarshalJsonResponse[T any](resp *http.Response, v *T, messageFor MessageFor) error {
	if StatusCodeRangeOf(resp) != Status2xx {
		return newAPIError(resp, messageFor)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: cannot read response: %w", ErrUnexpectedResponse, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf(
			"%w: %w (status code = %d)", ErrUnexpectedResponse, err, resp.StatusCode,
		)
	}
	return nil
}

// unmarshal http response which should be a json array.
//
// Responses of other shapes cause ErrNotAList.
// It guards against endpoints which respond a single error object in place of a list.
func unmarshalListResponse[T any](resp *http.Response, messageFor MessageFor) ([]T, error) {
	if StatusCodeRangeOf(resp) != Status2xx {
		return nil, newAPIError(resp, messageFor)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read response: %w", ErrUnexpectedResponse, err)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf(
			"%w: %s %s responds: %s",
			ErrNotAList, resp.Request.Method, resp.Request.URL.Path, abbreviate(trimmed, 200),
		)
	}

	ret := make([]T, 0)
	if err := json.Unmarshal(trimmed, &ret); err != nil {
		return nil, fmt.Errorf(
			"%w: %w (status code = %d)", ErrUnexpectedResponse, err, resp.StatusCode,
		)
	}
	return ret, nil
}

func unmarshalResponseDiscardingPayload(resp *http.Response, messageFor MessageFor) error {
	if StatusCodeRangeOf(resp) != Status2xx {
		return newAPIError(resp, messageFor)
	}
	_, err := io.Copy(io.Discard, resp.Body)
	return err
}

func abbreviate(b []byte, max int) string {
	if len(b) == 0 {
		return "(empty)"
	}
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "..."
}
