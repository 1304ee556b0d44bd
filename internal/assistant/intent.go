// Package assistant implements the intent-classification dispatcher behind
// the WorkSphere AI assistant: a deterministic keyword router, one handler
// per intent, and the response assembly into the wire envelope.
package assistant

import "strings"

// Intent is the classified purpose of a free-text query.
type Intent string

const (
	IntentTask     Intent = "task"
	IntentMessage  Intent = "message"
	IntentFile     Intent = "file"
	IntentApproval Intent = "approval"
	IntentMeeting  Intent = "meeting"
	IntentSummary  Intent = "summary"
	IntentUnknown  Intent = "unknown"
)

// intentRule couples an intent with its trigger keywords.
type intentRule struct {
	intent   Intent
	keywords []string
}

// intentRules are evaluated in declaration order; the first rule with any
// keyword contained in the query wins. The order is a compatibility
// contract: "pending" appears in both the task and approval keyword sets,
// and because the task rule is evaluated first, a query containing only
// "pending" always classifies as task.
var intentRules = []intentRule{
	{IntentTask, []string{"task", "todo", "pending"}},
	{IntentMessage, []string{"message", "chat", "unread"}},
	{IntentFile, []string{"file", "document", "find"}},
	{IntentApproval, []string{"approval", "approve", "pending"}},
	{IntentMeeting, []string{"meeting", "schedule", "calendar"}},
	{IntentSummary, []string{"summary", "overview", "status"}},
}

// Classify returns the intent of a free-text query using case-insensitive
// substring containment. It is a pure function of the input.
func Classify(query string) Intent {
	q := strings.ToLower(query)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.intent
			}
		}
	}
	return IntentUnknown
}
