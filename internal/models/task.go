package models

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

const (
	TitleMinLen       = 3
	TitleMaxLen       = 200
	DescriptionMaxLen = 1000
)

// Accepted textual layouts for due dates, tried in order.
var DueDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Letras (com acentos latinos), dígitos, espaços e pontuação básica.
var titlePattern = regexp.MustCompile(`^[a-zA-ZÀ-ÖØ-öø-ÿ0-9\s\-_.,!?]+$`)

// Task represents one unit of work owned by a user.
type Task struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"user_id"`
	CategoryID  *int64       `json:"category_id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`

	// housekeeping do loop de lembretes, nunca exposto
	LastRemindedAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTask creates an in-memory task with default status/priority and fresh
// timestamps. Field values are applied afterwards through the setters.
func NewTask(userID int64) *Task {
	now := time.Now()
	return &Task{
		UserID:    userID,
		Status:    StatusPending,
		Priority:  PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func IsValidStatus(s TaskStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func IsValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// StatusLabel returns the human-readable (pt-BR) name of a status, used in
// operation-gate messages.
func StatusLabel(s TaskStatus) string {
	switch s {
	case StatusPending:
		return "Pendente"
	case StatusInProgress:
		return "Em andamento"
	case StatusCompleted:
		return "Concluída"
	case StatusCancelled:
		return "Cancelada"
	}
	return string(s)
}

// ParseDueDate parses a textual due date against the accepted layouts.
func ParseDueDate(raw string) (time.Time, error) {
	for _, layout := range DueDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &InvalidFieldError{Field: "due_date", Message: MsgDueDateInvalid}
}

// CheckTitle validates a trimmed title. Checks run in empty → too-short →
// too-long → charset order and stop at the first failure.
func CheckTitle(title string) error {
	switch {
	case title == "":
		return &InvalidFieldError{Field: "title", Message: MsgTitleRequired}
	case utf8.RuneCountInString(title) < TitleMinLen:
		return &InvalidFieldError{Field: "title", Message: MsgTitleTooShort}
	case utf8.RuneCountInString(title) > TitleMaxLen:
		return &InvalidFieldError{Field: "title", Message: MsgTitleTooLong}
	case !titlePattern.MatchString(title):
		return &InvalidFieldError{Field: "title", Message: MsgTitleCharset}
	}
	return nil
}

func (t *Task) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if err := CheckTitle(title); err != nil {
		return err
	}
	t.Title = title
	t.touch()
	return nil
}

func (t *Task) SetDescription(description string) error {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > DescriptionMaxLen {
		return &InvalidFieldError{Field: "description", Message: MsgDescriptionTooLong}
	}
	t.Description = description
	t.touch()
	return nil
}

// SetStatus assigns a new status. Moving into completed stamps CompletedAt
// once (repeated completion keeps the original instant); moving anywhere else
// clears it. The entity itself allows any transition; update eligibility is
// the operation gate's concern.
func (t *Task) SetStatus(status TaskStatus) error {
	if !IsValidStatus(status) {
		return &InvalidFieldError{Field: "status", Message: MsgStatusInvalid}
	}
	if status == StatusCompleted {
		if t.CompletedAt == nil {
			now := time.Now()
			t.CompletedAt = &now
		}
	} else {
		t.CompletedAt = nil
	}
	t.Status = status
	t.touch()
	return nil
}

func (t *Task) SetPriority(priority TaskPriority) error {
	if !IsValidPriority(priority) {
		return &InvalidFieldError{Field: "priority", Message: MsgPriorityInvalid}
	}
	t.Priority = priority
	t.touch()
	return nil
}

func (t *Task) SetDueDate(due *time.Time) {
	t.DueDate = due
	t.touch()
}

func (t *Task) SetCategoryID(categoryID *int64) error {
	if categoryID != nil && *categoryID <= 0 {
		return &InvalidFieldError{Field: "category_id", Message: MsgCategoryIDInvalid}
	}
	t.CategoryID = categoryID
	t.touch()
	return nil
}

// SetUserID reassigns ownership without refreshing UpdatedAt: identity
// housekeeping is not a content edit.
func (t *Task) SetUserID(userID int64) error {
	if userID <= 0 {
		return &InvalidFieldError{Field: "user_id", Message: MsgUserIDInvalid}
	}
	t.UserID = userID
	return nil
}

func (t *Task) touch() {
	t.UpdatedAt = time.Now()
}

// TaskFilter defines the available parameters for listing tasks.
type TaskFilter struct {
	UserID     *int64
	CategoryID *int64
	Status     *TaskStatus
	Priority   *TaskPriority
}

// TaskStatistics aggregates per-user counters.
type TaskStatistics struct {
	Total      int                  `json:"total"`
	ByStatus   map[TaskStatus]int   `json:"by_status"`
	ByPriority map[TaskPriority]int `json:"by_priority"`
	Overdue    int                  `json:"overdue"`
	Completed  int                  `json:"completed"`
}
