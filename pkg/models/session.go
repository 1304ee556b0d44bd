package models

import "time"

// Exchange is one query/answer pair in a user's conversation history.
type Exchange struct {
	Query    string    `json:"query"`
	Response string    `json:"response"`
	Intent   string    `json:"intent"`
	At       time.Time `json:"at"`
}
