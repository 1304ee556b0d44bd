package models

import "time"

// File is an uploaded document visible to an organization.
type File struct {
	ID             string
	Name           string
	SizeBytes      int64
	UploaderID     string
	UploaderName   string
	OrganizationID string
	Created        time.Time
}
