package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"taskhub/internal/models"
)

// TaskInput is the raw create/update payload. Nil fields were absent from
// the request; updates only apply the fields that are present.
type TaskInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	UserID      *int64  `json:"user_id"`
	CategoryID  *int64  `json:"category_id"`
}

// WeekdayGateKey is the error key the weekday rule reports under. It is never
// merged into field-specific errors.
const WeekdayGateKey = "creation_time"

var weekdayNames = [8]string{
	"", "segunda-feira", "terça-feira", "quarta-feira",
	"quinta-feira", "sexta-feira", "sábado", "domingo",
}

// TaskValidator applies the structural and temporal rules to a payload.
// It holds no state besides the clock, which is injectable for tests.
type TaskValidator struct {
	Now func() time.Time
}

func NewTaskValidator() *TaskValidator {
	return &TaskValidator{Now: time.Now}
}

// Validate returns a mapping from field name (or WeekdayGateKey) to ordered
// error messages. An empty mapping means the payload is acceptable for
// storage. Rules are applied independently: all failing fields report
// together, only the per-field sub-checks short-circuit.
func (v *TaskValidator) Validate(in TaskInput, isCreate bool) map[string][]string {
	errs := map[string][]string{}
	now := v.Now()

	if in.Title != nil {
		if err := models.CheckTitle(strings.TrimSpace(*in.Title)); err != nil {
			addError(errs, "title", err)
		}
	} else if isCreate {
		addMessage(errs, "title", models.MsgTitleRequired)
	}

	if in.Description != nil && utf8.RuneCountInString(strings.TrimSpace(*in.Description)) > models.DescriptionMaxLen {
		addMessage(errs, "description", models.MsgDescriptionTooLong)
	}

	if in.Status != nil && *in.Status != "" && !models.IsValidStatus(models.TaskStatus(*in.Status)) {
		addMessage(errs, "status", models.MsgStatusInvalid)
	}

	if in.Priority != nil && *in.Priority != "" && !models.IsValidPriority(models.TaskPriority(*in.Priority)) {
		addMessage(errs, "priority", models.MsgPriorityInvalid)
	}

	if in.DueDate != nil && *in.DueDate != "" {
		due, err := models.ParseDueDate(*in.DueDate)
		if err != nil {
			addError(errs, "due_date", err)
		} else if isCreate && due.Before(now) {
			addMessage(errs, "due_date", models.MsgDueDatePast)
		}
	}

	if in.UserID == nil {
		if isCreate {
			addMessage(errs, "user_id", models.MsgUserIDRequired)
		}
	} else if *in.UserID <= 0 {
		addMessage(errs, "user_id", models.MsgUserIDInvalid)
	}

	if in.CategoryID != nil && *in.CategoryID <= 0 {
		addMessage(errs, "category_id", models.MsgCategoryIDInvalid)
	}

	// Regra de fim de semana: só na criação, sempre avaliada, chave própria.
	if isCreate {
		if msg := weekdayGateMessage(now); msg != "" {
			addMessage(errs, WeekdayGateKey, msg)
		}
	}

	return errs
}

// weekdayGateMessage returns a non-empty message when now falls on a
// Saturday or Sunday (ISO weekday 6/7), naming the next eligible weekday.
func weekdayGateMessage(now time.Time) string {
	iso := isoWeekday(now)
	if iso < 6 {
		return ""
	}
	// sábado → +2 dias, domingo → +1 dia
	next := now.AddDate(0, 0, 8-iso)
	return fmt.Sprintf(
		"Não é permitido criar tarefas no %s. Próximo dia útil: %s (%s).",
		weekdayNames[iso], weekdayNames[isoWeekday(next)], next.Format("02/01/2006"),
	)
}

// isoWeekday maps time.Weekday to ISO numbering (1=Monday .. 7=Sunday).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func addMessage(errs map[string][]string, field, msg string) {
	errs[field] = append(errs[field], msg)
}

func addError(errs map[string][]string, field string, err error) {
	addMessage(errs, field, err.Error())
}
