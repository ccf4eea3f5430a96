package enums

import "fmt"

// TaskStatus is the workshop lifecycle stage of a job. It is independent of
// the task's completed flag: status tracks where the job sits on the board,
// completed tracks whether it is closed.
type TaskStatus string

const (
	TaskStatusActive       TaskStatus = "Активные"
	TaskStatusUrgent       TaskStatus = "Срочные"
	TaskStatusDone         TaskStatus = "Готов"
	TaskStatusApproval     TaskStatus = "Согласование"
	TaskStatusAwaitingPart TaskStatus = "Ждёт запчасть"
	TaskStatusInProgress   TaskStatus = "В работе"
)

// TaskStatusAll is the board tab sentinel meaning "no status filter".
const TaskStatusAll = "Все задачи"

var validTaskStatuses = []TaskStatus{
	TaskStatusActive,
	TaskStatusUrgent,
	TaskStatusDone,
	TaskStatusApproval,
	TaskStatusAwaitingPart,
	TaskStatusInProgress,
}

// TaskStatuses returns the persistable statuses in board-tab order.
func TaskStatuses() []TaskStatus {
	out := make([]TaskStatus, len(validTaskStatuses))
	copy(out, validTaskStatuses)
	return out
}

// String implements fmt.Stringer.
func (s TaskStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known TaskStatus.
func (s TaskStatus) IsValid() bool {
	for _, candidate := range validTaskStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTaskStatus converts raw input into a TaskStatus.
func ParseTaskStatus(value string) (TaskStatus, error) {
	for _, candidate := range validTaskStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid task status %q", value)
}
