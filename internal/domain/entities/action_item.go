package entities

// Sentinel values used when the model leaves an action item field blank.
const (
	UnassignedAssignee = "Unassigned"
	NoDeadline         = "No deadline specified"
)

// ActionItem is a task extracted from a meeting.
type ActionItem struct {
	Assignee string `json:"assignee"`
	Task     string `json:"task"`
	Deadline string `json:"deadline"`
}

// NewActionItem builds an ActionItem, filling blank assignee and deadline
// with their sentinel values.
func NewActionItem(assignee, task, deadline string) ActionItem {
	if assignee == "" {
		assignee = UnassignedAssignee
	}
	if deadline == "" {
		deadline = NoDeadline
	}
	return ActionItem{Assignee: assignee, Task: task, Deadline: deadline}
}
