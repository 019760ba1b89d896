package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/opst/cloudconsole/pkg/console"
)

// Route registers handlers serving the state of service.
func Route(e *echo.Echo, service *console.Service) {
	api := func(p string) string { return "/api/" + p }

	e.GET(api("resources"), GetResourcesHandler(service.Poller))
	e.GET(api("notifications"), GetNotificationsHandler(service.Poller))
	e.GET(api("status"), GetStatusHandler(service.Poller))
	e.GET(api("jobs"), GetJobsHandler(service))
	e.POST(api("jobs"), QueueJobHandler(service))
	e.GET(api("notices"), GetNoticesHandler(service.Recorder))
}
