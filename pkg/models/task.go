package models

import "time"

// TaskPriority represents the urgency level of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// TaskStatus represents the lifecycle state of a task. "completed" is the
// terminal state and the only one the assistant filters on.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Task is a unit of assigned work.
type Task struct {
	ID             string
	Title          string
	Priority       TaskPriority
	Status         TaskStatus
	DueDate        *time.Time
	AssigneeID     string
	AssignerID     string
	OrganizationID string
	Created        time.Time
}
