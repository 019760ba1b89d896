// Package http builds requests for echo handlers under test.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
)

type RequestOption func(req *http.Request) *http.Request

func WithContext(ctx context.Context) RequestOption {
	return func(req *http.Request) *http.Request {
		return req.WithContext(ctx)
	}
}

func WithHeader(key string, value string) RequestOption {
	return func(req *http.Request) *http.Request {
		req.Header.Add(key, value)
		return req
	}
}

// = WithHeader("Content-Type", ctyp)
func ContentType(ctyp string) RequestOption {
	return WithHeader("Content-Type", ctyp)
}

// JSON encodes v as a request body. It panics when v cannot be encoded.
func JSON(v any) io.Reader {
	buf, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bytes.NewReader(buf)
}

func Get(e *echo.Echo, target string, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	return NewContext(e, http.MethodGet, target, nil, reqopts...)
}

func Post(e *echo.Echo, target string, data io.Reader, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	return NewContext(e, http.MethodPost, target, data, reqopts...)
}

// NewContext makes an echo.Context for calling a handler directly.
func NewContext(e *echo.Echo, method string, target string, data io.Reader, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	req := build(method, target, data, reqopts...)
	resp := httptest.NewRecorder()
	return e.NewContext(req, resp), resp
}

// Serve sends a request through the router of e, middlewares included.
func Serve(e *echo.Echo, method string, target string, data io.Reader, reqopts ...RequestOption) *httptest.ResponseRecorder {
	req := build(method, target, data, reqopts...)
	resp := httptest.NewRecorder()
	e.ServeHTTP(resp, req)
	return resp
}

func build(method string, target string, data io.Reader, reqopts ...RequestOption) *http.Request {
	req := httptest.NewRequest(method, target, data)
	for _, opt := range reqopts {
		req = opt(req)
	}
	return req
}
