package ui

import (
	"time"

	mixtapev1 "github.com/osa030/mixtape/internal/api/mixtapev1"
)

type notificationMsg struct {
	notification *mixtapev1.Notification
}

type streamClosedMsg struct {
	err error
}

type actionDoneMsg struct {
	err error
}

type searchDoneMsg struct {
	query   string
	tracks  []mixtapev1.Track
	message string
	err     error
}

type shareDoneMsg struct {
	url string
	err error
}

type tickMsg time.Time
