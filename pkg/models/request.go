package models

import (
	"errors"
	"strings"
)

// QueryContext carries optional hints about where the query was asked from.
type QueryContext struct {
	DepartmentID string `json:"departmentId,omitempty"`
	ChannelID    string `json:"channelId,omitempty"`
	TaskID       string `json:"taskId,omitempty"`
}

// AssistantRequest is the body of POST /ai-assistant.
type AssistantRequest struct {
	Query          string        `json:"query"`
	UserID         string        `json:"userId"`
	OrganizationID string        `json:"organizationId"`
	Context        *QueryContext `json:"context,omitempty"`
}

// Validate checks that the required fields are present and non-blank.
// The returned error names every missing field.
func (r *AssistantRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Query) == "" {
		missing = append(missing, "query")
	}
	if strings.TrimSpace(r.UserID) == "" {
		missing = append(missing, "userId")
	}
	if strings.TrimSpace(r.OrganizationID) == "" {
		missing = append(missing, "organizationId")
	}
	if len(missing) > 0 {
		return errors.New("missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}
