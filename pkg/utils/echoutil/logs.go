package echoutil

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// LogHandlerFunc is a middleware logging each request and its response in INFO level.
//
// Failed requests (status 500 or above, or a handler error) are logged in WARN level.
func LogHandlerFunc(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		begin := time.Now()
		c.Logger().Infof("< request %s %s from %s", req.Method, req.URL, c.RealIP())

		err := next(c)

		status := c.Response().Status
		if he := (*echo.HTTPError)(nil); !c.Response().Committed && errors.As(err, &he) {
			status = he.Code
		}
		logf := c.Logger().Infof
		if err != nil || 500 <= status {
			logf = c.Logger().Warnf
		}
		logf(
			"> response %s %s: status = %d in %s / error = %v",
			req.Method, req.URL, status, time.Since(begin), err,
		)
		return err
	}
}

var levels = map[string]log.Lvl{
	"debug": log.DEBUG,
	"info":  log.INFO,
	"warn":  log.WARN,
	"":      log.WARN,
	"error": log.ERROR,
	"off":   log.OFF,
}

// ParseLevel resolves a level name (debug, info, warn, error or off) case-insensitively.
//
// An empty name means warn.
func ParseLevel(name string) (log.Lvl, bool) {
	lv, ok := levels[strings.ToLower(name)]
	return lv, ok
}

// SetLevel of echo's logger by name. Unknown names fall back to warn.
func SetLevel(e *echo.Echo, name string) {
	lv, ok := ParseLevel(name)
	if !ok {
		e.Logger.SetLevel(log.WARN)
		e.Logger.Warnf("unknown loglevel: %s . fall-backed to warn", name)
		return
	}
	e.Logger.SetLevel(lv)
}
