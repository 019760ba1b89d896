package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorResponse is the error body shape of the backend:
//
//	{"errors": [{"code": ..., "msg": "..."}, ...]}
type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}

type ErrorItem struct {
	// Code is the error code. The backend sends both of numbers and strings.
	Code string `json:"code,omitempty"`
	Msg  string `json:"msg"`
}

func (er *ErrorResponse) UnmarshalJSON(b []byte) error {
	f := new(struct {
		Errors *[]ErrorItem `json:"errors"`
	})
	if err := json.Unmarshal(b, f); err != nil {
		return err
	}
	if f.Errors == nil {
		return fmt.Errorf(`required field missing: "errors"`)
	}
	er.Errors = *f.Errors
	return nil
}

func (ei *ErrorItem) UnmarshalJSON(b []byte) error {
	f := new(struct {
		Code json.RawMessage `json:"code"`
		Msg  string          `json:"msg"`
	})
	if err := json.Unmarshal(b, f); err != nil {
		return err
	}
	ei.Msg = f.Msg
	ei.Code = ""
	if len(f.Code) == 0 || string(f.Code) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(f.Code, &s); err == nil {
		ei.Code = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(f.Code, &n); err != nil {
		return fmt.Errorf("code is neither string nor number: %s", string(f.Code))
	}
	ei.Code = n.String()
	return nil
}

// Messages returns every msg in order.
func (er ErrorResponse) Messages() []string {
	msgs := make([]string, 0, len(er.Errors))
	for _, e := range er.Errors {
		if e.Msg == "" {
			continue
		}
		msgs = append(msgs, e.Msg)
	}
	return msgs
}

func (er ErrorResponse) String() string {
	return strings.Join(er.Messages(), "\n")
}
