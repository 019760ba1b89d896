package inbox

import (
	"github.com/opst/cloudconsole/pkg/api/types/notifications"
)

// Unread counts notifications not read yet.
func Unread(ns []notifications.Notification) int {
	count := 0
	for _, n := range ns {
		if !n.Read() {
			count += 1
		}
	}
	return count
}

// OnlyUnread returns notifications not read yet, keeping order.
func OnlyUnread(ns []notifications.Notification) []notifications.Notification {
	ret := make([]notifications.Notification, 0, len(ns))
	for _, n := range ns {
		if !n.Read() {
			ret = append(ret, n)
		}
	}
	return ret
}
