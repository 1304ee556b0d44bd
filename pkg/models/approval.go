package models

import "time"

// ApprovalStatus represents the state of an approval request. The assistant
// only queries pending requests.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Approval is a pending request routed between a requester and an approver.
type Approval struct {
	ID            string
	Type          string
	RequesterID   string
	RequesterName string
	ApproverID    string
	Status        ApprovalStatus
	Priority      TaskPriority
	Created       time.Time
}
