package models

import "time"

type Notification struct {
	ID             string
	Type           string
	Title          string
	Message        string
	Timestamp      time.Time
	IsRead         bool
	ActionRequired bool
}
