package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"unicode/utf8"

	"taskhub/internal/models"
	"taskhub/internal/repositories"
	"taskhub/internal/validation"
)

// TaskService orchestrates sanitization, validation, the operation gate and
// entity side effects around the repository. Every operation returns a
// *Result; repository errors surface in the result, never as panics.
//
// Per-id operations take the authenticated userID and only ever see that
// user's tasks; a task owned by someone else reads as not found.
//
// The lookup → gate → persist sequence is not locked: two concurrent callers
// mutating the same task race and the last writer wins.
type TaskService interface {
	Create(ctx context.Context, in validation.TaskInput) *Result
	GetByID(ctx context.Context, id, userID int64) *Result
	GetAll(ctx context.Context, filter models.TaskFilter) *Result
	Update(ctx context.Context, id, userID int64, in validation.TaskInput) *Result
	Delete(ctx context.Context, id, userID int64) *Result
	Complete(ctx context.Context, id, userID int64) *Result
	Start(ctx context.Context, id, userID int64) *Result
	Duplicate(ctx context.Context, id, userID int64) *Result
	Statistics(ctx context.Context, userID int64) *Result
}

const duplicateSuffix = " - cópia"

type taskService struct {
	repo       repositories.TaskRepository
	categories repositories.CategoryRepository
	validator  *validation.TaskValidator
	gate       *validation.Gate
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo repositories.TaskRepository, categories repositories.CategoryRepository) TaskService {
	return &taskService{
		repo:       repo,
		categories: categories,
		validator:  validation.NewTaskValidator(),
		gate:       validation.NewGate(),
	}
}

func (s *taskService) Create(ctx context.Context, in validation.TaskInput) *Result {
	in = validation.SanitizeInput(in)

	errs := s.validator.Validate(in, true)
	owner := int64(0)
	if in.UserID != nil {
		owner = *in.UserID
	}
	if res := s.checkCategoryExists(ctx, owner, in, errs); res != nil {
		return res
	}
	if len(errs) > 0 {
		return FailValidation(errs)
	}

	task := models.NewTask(*in.UserID)
	if err := applyInput(task, in); err != nil {
		return failInvalidField(err)
	}

	if err := s.repo.Store(ctx, task); err != nil {
		log.Printf("[task][create][err] %v", err)
		return Fail(CodeCreationError, err.Error())
	}
	return Ok("Tarefa criada com sucesso.", task)
}

func (s *taskService) GetByID(ctx context.Context, id, userID int64) *Result {
	task, res := s.find(ctx, id, userID)
	if res != nil {
		return res
	}
	return Ok("Tarefa encontrada.", task)
}

func (s *taskService) GetAll(ctx context.Context, filter models.TaskFilter) *Result {
	tasks, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		log.Printf("[task][list][err] %v", err)
		return Fail(CodeInternalError, err.Error())
	}
	return Ok("Tarefas listadas.", tasks)
}

func (s *taskService) Update(ctx context.Context, id, userID int64, in validation.TaskInput) *Result {
	task, res := s.find(ctx, id, userID)
	if res != nil {
		return res
	}

	// O gate roda contra o estado persistido, antes de qualquer validação
	// estrutural do novo payload.
	if msgs := s.gate.CanUpdate(task); len(msgs) > 0 {
		return FailOperation(msgs)
	}

	in = validation.SanitizeInput(in)
	errs := s.validator.Validate(in, false)
	if res := s.checkCategoryExists(ctx, task.UserID, in, errs); res != nil {
		return res
	}
	if len(errs) > 0 {
		return FailValidation(errs)
	}

	// Atualização parcial: campos ausentes mantêm o valor anterior.
	if err := applyInput(task, in); err != nil {
		return failInvalidField(err)
	}

	if err := s.repo.Update(ctx, task); err != nil {
		log.Printf("[task][update][err] id=%d: %v", id, err)
		return Fail(CodeUpdateError, err.Error())
	}
	return Ok("Tarefa atualizada com sucesso.", task)
}

func (s *taskService) Delete(ctx context.Context, id, userID int64) *Result {
	task, res := s.find(ctx, id, userID)
	if res != nil {
		return res
	}

	if msgs := s.gate.CanDelete(task); len(msgs) > 0 {
		return FailOperation(msgs)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Printf("[task][delete][err] id=%d: %v", id, err)
		return Fail(CodeDeleteError, err.Error())
	}
	return Ok("Tarefa excluída com sucesso.", nil)
}

// Complete and Start are direct status shortcuts: they bypass the operation
// gate on purpose, unlike the generic Update.
func (s *taskService) Complete(ctx context.Context, id, userID int64) *Result {
	return s.shortcut(ctx, id, userID, models.StatusCompleted, CodeCompleteError, "Tarefa concluída.")
}

func (s *taskService) Start(ctx context.Context, id, userID int64) *Result {
	return s.shortcut(ctx, id, userID, models.StatusInProgress, CodeStartError, "Tarefa iniciada.")
}

func (s *taskService) shortcut(ctx context.Context, id, userID int64, status models.TaskStatus, failCode, okMessage string) *Result {
	task, res := s.find(ctx, id, userID)
	if res != nil {
		return res
	}
	if err := task.SetStatus(status); err != nil {
		return failInvalidField(err)
	}
	if err := s.repo.Update(ctx, task); err != nil {
		log.Printf("[task][status][err] id=%d to=%s: %v", id, status, err)
		return Fail(failCode, err.Error())
	}
	return Ok(okMessage, task)
}

// Duplicate creates a fresh pending copy of an existing task. It is a
// creation, not a mutation of the original, so neither the gate nor the
// create-only temporal rules (weekday, past due date) apply.
func (s *taskService) Duplicate(ctx context.Context, id, userID int64) *Result {
	original, res := s.find(ctx, id, userID)
	if res != nil {
		return res
	}

	copyTask := models.NewTask(original.UserID)
	if err := copyTask.SetTitle(duplicateTitle(original.Title)); err != nil {
		return failInvalidField(err)
	}
	if err := copyTask.SetDescription(original.Description); err != nil {
		return failInvalidField(err)
	}
	if err := copyTask.SetPriority(original.Priority); err != nil {
		return failInvalidField(err)
	}
	if err := copyTask.SetCategoryID(original.CategoryID); err != nil {
		return failInvalidField(err)
	}
	copyTask.SetDueDate(original.DueDate)

	if err := s.repo.Store(ctx, copyTask); err != nil {
		log.Printf("[task][duplicate][err] id=%d: %v", id, err)
		return Fail(CodeDuplicateError, err.Error())
	}
	return Ok("Tarefa duplicada com sucesso.", copyTask)
}

func (s *taskService) Statistics(ctx context.Context, userID int64) *Result {
	stats, err := s.repo.Statistics(ctx, userID)
	if err != nil {
		log.Printf("[task][stats][err] user=%d: %v", userID, err)
		return Fail(CodeStatisticsError, err.Error())
	}
	return Ok("Estatísticas geradas.", stats)
}

// find resolves a task owned by userID. A task belonging to another user is
// reported as not found so ids cannot be probed across accounts.
func (s *taskService) find(ctx context.Context, id, userID int64) (*models.Task, *Result) {
	if id <= 0 {
		return nil, Fail(CodeMissingID, "Identificador da tarefa ausente ou inválido.")
	}
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Printf("[task][find][err] id=%d: %v", id, err)
		return nil, Fail(CodeInternalError, err.Error())
	}
	if task == nil || task.UserID != userID {
		return nil, Fail(CodeTaskNotFound, "Tarefa não encontrada.")
	}
	return task, nil
}

// checkCategoryExists appends a category_id error when the referenced
// category does not exist or belongs to another user. A repository failure
// aborts with an internal result instead of masquerading as a validation
// error.
func (s *taskService) checkCategoryExists(ctx context.Context, owner int64, in validation.TaskInput, errs map[string][]string) *Result {
	if in.CategoryID == nil || *in.CategoryID <= 0 || len(errs["category_id"]) > 0 {
		return nil
	}
	category, err := s.categories.FindByID(ctx, *in.CategoryID)
	if err != nil {
		log.Printf("[task][category-check][err] id=%d: %v", *in.CategoryID, err)
		return Fail(CodeInternalError, err.Error())
	}
	if category == nil || (owner > 0 && category.UserID != owner) {
		errs["category_id"] = append(errs["category_id"], models.MsgCategoryNotFound)
	}
	return nil
}

// applyInput copies the present fields of the payload onto the entity
// through its validating setters.
func applyInput(task *models.Task, in validation.TaskInput) error {
	if in.Title != nil {
		if err := task.SetTitle(*in.Title); err != nil {
			return err
		}
	}
	if in.Description != nil {
		if err := task.SetDescription(*in.Description); err != nil {
			return err
		}
	}
	if in.Status != nil && *in.Status != "" {
		if err := task.SetStatus(models.TaskStatus(*in.Status)); err != nil {
			return err
		}
	}
	if in.Priority != nil && *in.Priority != "" {
		if err := task.SetPriority(models.TaskPriority(*in.Priority)); err != nil {
			return err
		}
	}
	if in.DueDate != nil {
		if *in.DueDate == "" {
			task.SetDueDate(nil)
		} else {
			due, err := models.ParseDueDate(*in.DueDate)
			if err != nil {
				return err
			}
			task.SetDueDate(&due)
		}
	}
	if in.CategoryID != nil {
		if err := task.SetCategoryID(in.CategoryID); err != nil {
			return err
		}
	}
	return nil
}

// duplicateTitle appends the copy marker, trimming the base title when the
// result would blow the length limit.
func duplicateTitle(title string) string {
	max := models.TitleMaxLen - utf8.RuneCountInString(duplicateSuffix)
	if utf8.RuneCountInString(title) > max {
		runes := []rune(title)
		title = strings.TrimSpace(string(runes[:max]))
	}
	return title + duplicateSuffix
}

// failInvalidField converts an entity-setter violation into the same shape a
// validator rejection produces.
func failInvalidField(err error) *Result {
	var ife *models.InvalidFieldError
	if errors.As(err, &ife) {
		return FailValidation(map[string][]string{ife.Field: {ife.Message}})
	}
	return Fail(CodeInternalError, err.Error())
}
