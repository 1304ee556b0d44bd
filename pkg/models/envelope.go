package models

import (
	"encoding/json"
	"fmt"
)

// ActionKind identifies the follow-up operation an Action proposes.
type ActionKind string

const (
	ActionCreateTask      ActionKind = "create_task"
	ActionSendMessage     ActionKind = "send_message"
	ActionScheduleMeeting ActionKind = "schedule_meeting"
	ActionSearchFiles     ActionKind = "search_files"
)

// CreateTaskPayload targets either an existing task or an approval request
// that should become a review task. Exactly one of TaskID/ApprovalID is set.
type CreateTaskPayload struct {
	TaskID     string `json:"taskId,omitempty"`
	ApprovalID string `json:"approvalId,omitempty"`
	Action     string `json:"action"`
}

// SendMessagePayload describes a bulk message operation.
type SendMessagePayload struct {
	Action string `json:"action"`
}

// ScheduleMeetingPayload proposes a meeting of a given type and length.
type ScheduleMeetingPayload struct {
	Action          string `json:"action"`
	MeetingType     string `json:"type"`
	DurationMinutes int    `json:"duration"`
}

// SearchFilesPayload targets a single file.
type SearchFilesPayload struct {
	FileID string `json:"fileId"`
	Action string `json:"action"`
}

// Action is an advisory follow-up operation the caller may execute. It is a
// tagged union: Kind selects which payload pointer is non-nil. Actions are
// never executed by the assistant itself.
type Action struct {
	Kind            ActionKind
	CreateTask      *CreateTaskPayload
	SendMessage     *SendMessagePayload
	ScheduleMeeting *ScheduleMeetingPayload
	SearchFiles     *SearchFilesPayload
}

// CompleteTaskAction proposes marking the given task complete.
func CompleteTaskAction(taskID string) Action {
	return Action{Kind: ActionCreateTask, CreateTask: &CreateTaskPayload{TaskID: taskID, Action: "complete"}}
}

// ReviewApprovalAction proposes reviewing the given approval request.
func ReviewApprovalAction(approvalID string) Action {
	return Action{Kind: ActionCreateTask, CreateTask: &CreateTaskPayload{ApprovalID: approvalID, Action: "review"}}
}

// MarkAllReadAction proposes marking every unread message read.
func MarkAllReadAction() Action {
	return Action{Kind: ActionSendMessage, SendMessage: &SendMessagePayload{Action: "mark_all_read"}}
}

// ScheduleMeetingAction proposes scheduling a meeting.
func ScheduleMeetingAction(meetingType string, durationMinutes int) Action {
	return Action{Kind: ActionScheduleMeeting, ScheduleMeeting: &ScheduleMeetingPayload{
		Action:          "schedule",
		MeetingType:     meetingType,
		DurationMinutes: durationMinutes,
	}}
}

// PreviewFileAction proposes opening a preview of the given file.
func PreviewFileAction(fileID string) Action {
	return Action{Kind: ActionSearchFiles, SearchFiles: &SearchFilesPayload{FileID: fileID, Action: "preview"}}
}

// wireAction is the on-the-wire shape of an Action: {"type": ..., "data": ...}.
type wireAction struct {
	Type ActionKind      `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON encodes the action as {"type", "data"} with the payload shape
// matching Kind.
func (a Action) MarshalJSON() ([]byte, error) {
	var payload any
	switch a.Kind {
	case ActionCreateTask:
		payload = a.CreateTask
	case ActionSendMessage:
		payload = a.SendMessage
	case ActionScheduleMeeting:
		payload = a.ScheduleMeeting
	case ActionSearchFiles:
		payload = a.SearchFiles
	default:
		return nil, fmt.Errorf("unknown action kind %q", a.Kind)
	}
	if payload == nil {
		return nil, fmt.Errorf("action kind %q has no payload", a.Kind)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireAction{Type: a.Kind, Data: data})
}

// UnmarshalJSON decodes the wire shape back into the tagged union.
func (a *Action) UnmarshalJSON(b []byte) error {
	var w wireAction
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*a = Action{Kind: w.Type}
	switch w.Type {
	case ActionCreateTask:
		a.CreateTask = &CreateTaskPayload{}
		return json.Unmarshal(w.Data, a.CreateTask)
	case ActionSendMessage:
		a.SendMessage = &SendMessagePayload{}
		return json.Unmarshal(w.Data, a.SendMessage)
	case ActionScheduleMeeting:
		a.ScheduleMeeting = &ScheduleMeetingPayload{}
		return json.Unmarshal(w.Data, a.ScheduleMeeting)
	case ActionSearchFiles:
		a.SearchFiles = &SearchFilesPayload{}
		return json.Unmarshal(w.Data, a.SearchFiles)
	default:
		return fmt.Errorf("unknown action kind %q", w.Type)
	}
}

// Envelope is the uniform assistant response produced by an intent handler:
// a human-readable digest plus optional advisory actions and follow-up
// suggestions.
type Envelope struct {
	Text        string
	Actions     []Action
	Suggestions []string
}

// AssistantResponse is the serialized success body of POST /ai-assistant.
type AssistantResponse struct {
	Response    string   `json:"response"`
	Actions     []Action `json:"actions,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}
