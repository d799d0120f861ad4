package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"taskhub/internal/models"
	"taskhub/internal/validation"
)

// 2026-08-31 is a Monday.
var testMonday = time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)

// --- in-memory fakes ---

type fakeTaskRepo struct {
	tasks    map[int64]*models.Task
	nextID   int64
	storeErr error
	statsErr error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[int64]*models.Task{}}
}

func cloneTask(t *models.Task) *models.Task {
	c := *t
	return &c
}

func (f *fakeTaskRepo) Store(_ context.Context, task *models.Task) error {
	if f.storeErr != nil {
		return f.storeErr
	}
	f.nextID++
	task.ID = f.nextID
	f.tasks[task.ID] = cloneTask(task)
	return nil
}

func (f *fakeTaskRepo) FindByID(_ context.Context, id int64) (*models.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	return cloneTask(task), nil
}

func (f *fakeTaskRepo) FindAll(_ context.Context, _ models.TaskFilter) ([]models.Task, error) {
	var out []models.Task
	for _, task := range f.tasks {
		out = append(out, *task)
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return fmt.Errorf("task %d not stored", task.ID)
	}
	f.tasks[task.ID] = cloneTask(task)
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) Statistics(_ context.Context, userID int64) (*models.TaskStatistics, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	stats := &models.TaskStatistics{
		ByStatus:   map[models.TaskStatus]int{},
		ByPriority: map[models.TaskPriority]int{},
	}
	for _, task := range f.tasks {
		if task.UserID != userID {
			continue
		}
		stats.Total++
		stats.ByStatus[task.Status]++
		stats.ByPriority[task.Priority]++
	}
	stats.Completed = stats.ByStatus[models.StatusCompleted]
	now := time.Now()
	for _, task := range f.tasks {
		if task.UserID != userID {
			continue
		}
		if task.DueDate != nil && task.DueDate.Before(now) &&
			task.Status != models.StatusCompleted && task.Status != models.StatusCancelled {
			stats.Overdue++
		}
	}
	return stats, nil
}

func (f *fakeTaskRepo) ListDueWithin(_ context.Context, _ time.Duration, _ int) ([]models.Task, error) {
	return nil, nil
}

func (f *fakeTaskRepo) SetReminderSent(_ context.Context, _ int64) error {
	return nil
}

type fakeCategoryRepo struct {
	categories map[int64]*models.Category
}

func newFakeCategoryRepo(ids ...int64) *fakeCategoryRepo {
	f := &fakeCategoryRepo{categories: map[int64]*models.Category{}}
	for _, id := range ids {
		f.categories[id] = &models.Category{ID: id, UserID: 1, Name: fmt.Sprintf("cat-%d", id)}
	}
	return f
}

func (f *fakeCategoryRepo) Store(_ context.Context, c *models.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id int64) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCategoryRepo) FindAll(_ context.Context, _ models.CategoryFilter) ([]models.Category, error) {
	return nil, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *models.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	delete(f.categories, id)
	return nil
}

// --- helpers ---

func newTestService(repo *fakeTaskRepo, cats *fakeCategoryRepo) *taskService {
	svc := NewTaskService(repo, cats).(*taskService)
	// pin the clocks to a weekday so create tests don't depend on the
	// day the suite runs
	svc.validator.Now = func() time.Time { return testMonday }
	return svc
}

func seedTask(t *testing.T, repo *fakeTaskRepo, status models.TaskStatus, age time.Duration) *models.Task {
	t.Helper()
	task := models.NewTask(1)
	if err := task.SetTitle("Tarefa original"); err != nil {
		t.Fatal(err)
	}
	if err := task.SetStatus(status); err != nil {
		t.Fatal(err)
	}
	task.CreatedAt = time.Now().Add(-age)
	if err := repo.Store(context.Background(), task); err != nil {
		t.Fatal(err)
	}
	return task
}

func strPtr(s string) *string { return &s }
func i64Ptr(n int64) *int64   { return &n }

func createInput(title string) validation.TaskInput {
	return validation.TaskInput{Title: strPtr(title), UserID: i64Ptr(1)}
}

// --- tests ---

func TestCreateSuccess(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo, newFakeCategoryRepo())

	res := svc.Create(context.Background(), createInput("Comprar mantimentos"))
	if !res.Success {
		t.Fatalf("create failed: %+v", res)
	}
	task := res.Data.(*models.Task)
	if task.ID == 0 {
		t.Error("created task should have an identity")
	}
	if task.Status != models.StatusPending || task.Priority != models.PriorityMedium {
		t.Errorf("defaults not applied: status=%q priority=%q", task.Status, task.Priority)
	}
}

func TestCreateSanitizesBeforeValidation(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo, newFakeCategoryRepo())

	res := svc.Create(context.Background(), createInput("  <b>Comprar mantimentos</b>  "))
	if !res.Success {
		t.Fatalf("create failed: %+v", res)
	}
	task := res.Data.(*models.Task)
	if task.Title != "Comprar mantimentos" {
		t.Errorf("Title = %q, want sanitized", task.Title)
	}
}

func TestCreateValidationError(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo, newFakeCategoryRepo())

	res := svc.Create(context.Background(), createInput("ab"))
	if res.Success || res.ErrorCode != CodeValidationError {
		t.Fatalf("expected VALIDATION_ERROR, got %+v", res)
	}
	if len(res.Errors["title"]) != 1 || res.Errors["title"][0] != models.MsgTitleTooShort {
		t.Errorf("title errors = %v", res.Errors["title"])
	}
	if len(repo.tasks) != 0 {
		t.Error("nothing may be persisted on validation failure")
	}
}

func TestCreateOnWeekendBlocked(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo, newFakeCategoryRepo())
	saturday := time.Date(2026, 8, 29, 10, 0, 0, 0, time.Local)
	svc.validator.Now = func() time.Time { return saturday }

	res := svc.Create(context.Background(), createInput("Tarefa de sábado"))
	if res.Success || res.ErrorCode != CodeValidationError {
		t.Fatalf("expected VALIDATION_ERROR, got %+v", res)
	}
	if len(res.Errors[validation.WeekdayGateKey]) == 0 {
		t.Errorf("expected %s error, got %v", validation.WeekdayGateKey, res.Errors)
	}
	if len(repo.tasks) != 0 {
		t.Error("weekend create must not persist")
	}
}

func TestCreateUnknownCategory(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo, newFakeCategoryRepo(3))

	in := createInput("Tarefa com categoria")
	in.CategoryID = i64Ptr(99)
	res := svc.Create(context.Background(), in)
	if res.Success || res.ErrorCode != CodeValidationError {
		t.Fatalf("expected VALIDATION_ERROR, got %+v", res)
	}
	if len(res.Errors["category_id"]) != 1 || res.Errors["category_id"][0] != models.MsgCategoryNotFound {
		t.Errorf("category_id errors = %v", res.Errors["category_id"])
	}

	in.CategoryID = i64Ptr(3)
	if res := svc.Create(context.Background(), in); !res.Success {
		t.Fatalf("existing category should pass: %+v", res)
	}
}

func TestCreateRejectsCategoryOfAnotherUser(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo, newFakeCategoryRepo(3)) // category 3 belongs to user 1

	in := createInput("Tarefa com categoria alheia")
	in.UserID = i64Ptr(2)
	in.CategoryID = i64Ptr(3)

	res := svc.Create(context.Background(), in)
	if res.Success || res.ErrorCode != CodeValidationError {
		t.Fatalf("expected VALIDATION_ERROR, got %+v", res)
	}
	if len(res.Errors["category_id"]) != 1 || res.Errors["category_id"][0] != models.MsgCategoryNotFound {
		t.Errorf("category_id errors = %v", res.Errors["category_id"])
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc := newTestService(newFakeTaskRepo(), newFakeCategoryRepo())

	res := svc.Update(context.Background(), 42, 1, validation.TaskInput{Title: strPtr("Novo título")})
	if res.ErrorCode != CodeTaskNotFound {
		t.Fatalf("expected TASK_NOT_FOUND, got %+v", res)
	}
}

func TestUpdateGateBlocksNonPending(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo, newFakeCategoryRepo())
	task := seedTask(t, repo, models.StatusInProgress, time.Hour)

	// payload fully valid: the gate must still reject, untouched
	res := svc.Update(context.Background(), task.ID, 1, validation.TaskInput{Title: strPtr("Título perfeitamente válido")})
	if res.ErrorCode != CodeOperationNotAllowed {
		t.Fatalf("expected OPERATION_NOT_ALLOWED, got %+v", res)
	}
	if len(res.Errors["operation"]) != 1 || !strings.Contains(res.Errors["operation"][0], "Em andamento") {
		t.Errorf("operation errors = %v", res.Errors["operation"])
	}

	stored := repo.tasks[task.ID]
	if stored.Title != "Tarefa original" {
		t.Errorf("task mutated despite gate failure: %q", stored.Title)
	}
}

func TestUpdatePartial(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo, newFakeCategoryRepo())
	task := seedTask(t, repo, models.StatusPending, time.Hour)

	res := svc.Update(context.Background(), task.ID, 1, validation.TaskInput{Priority: strPtr("urgent")})
	if !res.Success {
		t.Fatalf("update failed: %+v", res)
	}
	updated := res.Data.(*models.Task)
	if updated.Title != "Tarefa original" {
		t.Errorf("absent fields must retain prior values, title = %q", updated.Title)
	}
	if updated.Priority != models.PriorityUrgent {
		t.Errorf("priority = %q, want urgent", updated.Priority)
	}
}

func TestUpdateValidationError(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo, newFakeCategoryRepo())
	task := seedTask(t, repo, models.StatusPending, time.Hour)

	res := svc.Update(context.Background(), task.ID, 1, validation.TaskInput{Status: strPtr("archived")})
	if res.ErrorCode != CodeValidationError {
		t.Fatalf("expected VALIDATION_ERROR, got %+v", res)
	}
	if repo.tasks[task.ID].Status != models.StatusPending {
		t.Error("status mutated despite validation failure")
	}
}

func TestDeleteTooYoung(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo, newFakeCategoryRepo())
	task := seedTask(t, repo, models.StatusPending, 4*24*time.Hour+23*time.Hour)

	res := svc.Delete(context.Background(), task.ID, 1)
	if res.ErrorCode != CodeOperationNotAllowed {
		t.Fatalf("expected OPERATION_NOT_ALLOWED, got %+v", res)
	}
	if !strings.Contains(res.Errors["operation"][0], "Aguarde mais 1 dia(s)") {
		t.Errorf("operation errors = %v", res.Errors["operation"])
	}
	if _, ok := repo.tasks[task.ID]; !ok {
		t.Error("task must not be deleted")
	}
}

func TestDeleteOldEnough(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo, newFakeCategoryRepo())
	task := seedTask(t, repo, models.StatusPending, 5*24*time.Hour)

	res := svc.Delete(context.Background(), task.ID, 1)
	if !res.Success {
		t.Fatalf("delete at the 5-day boundary should be allowed: %+v", res)
	}
	if _, ok := repo.tasks[task.ID]; ok {
		t.Error("task should be gone")
	}
}

func TestDeleteNonPending(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo, newFakeCategoryRepo())
	task := seedTask(t, repo, models.StatusCancelled, 10*24*time.Hour)

	res := svc.Delete(context.Background(), task.ID, 1)
	if res.ErrorCode != CodeOperationNotAllowed {
		t.Fatalf("expected OPERATION_NOT_ALLOWED, got %+v", res)
	}
}

func TestCompleteBypassesGateAndIsIdempotent(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo, newFakeCategoryRepo())
	// in_progress: generic update would be gated, Complete must not be
	task := seedTask(t, repo, models.StatusInProgress, time.Hour)

	res := svc.Complete(context.Background(), task.ID, 1)
	if !res.Success {
		t.Fatalf("complete failed: %+v", res)
	}
	first := repo.tasks[task.ID].CompletedAt
	if first == nil {
		t.Fatal("CompletedAt should be stamped")
	}

	time.Sleep(5 * time.Millisecond)
	if res := svc.Complete(context.Background(), task.ID, 1); !res.Success {
		t.Fatalf("second complete failed: %+v", res)
	}
	second := repo.tasks[task.ID].CompletedAt
	if second == nil || !second.Equal(*first) {
		t.Errorf("repeated completion moved CompletedAt: %v -> %v", first, second)
	}
}

func TestStartClearsCompletedAt(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo, newFakeCategoryRepo())
	task := seedTask(t, repo, models.StatusCompleted, time.Hour)
	if repo.tasks[task.ID].CompletedAt == nil {
		t.Fatal("seed should have CompletedAt set")
	}

	res := svc.Start(context.Background(), task.ID, 1)
	if !res.Success {
		t.Fatalf("start failed: %+v", res)
	}
	stored := repo.tasks[task.ID]
	if stored.Status != models.StatusInProgress {
		t.Errorf("status = %q", stored.Status)
	}
	if stored.CompletedAt != nil {
		t.Error("CompletedAt should be cleared when leaving completed")
	}
}

func TestDuplicate(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo, newFakeCategoryRepo(3))

	original := models.NewTask(1)
	if err := original.SetTitle("Tarefa concluída antiga"); err != nil {
		t.Fatal(err)
	}
	if err := original.SetDescription("detalhes"); err != nil {
		t.Fatal(err)
	}
	if err := original.SetPriority(models.PriorityHigh); err != nil {
		t.Fatal(err)
	}
	if err := original.SetCategoryID(i64Ptr(3)); err != nil {
		t.Fatal(err)
	}
	pastDue := time.Now().Add(-48 * time.Hour)
	original.SetDueDate(&pastDue)
	if err := original.SetStatus(models.StatusCompleted); err != nil {
		t.Fatal(err)
	}
	if err := repo.Store(context.Background(), original); err != nil {
		t.Fatal(err)
	}

	res := svc.Duplicate(context.Background(), original.ID, 1)
	if !res.Success {
		t.Fatalf("duplicate failed: %+v", res)
	}
	dup := res.Data.(*models.Task)

	if dup.ID == original.ID || dup.ID == 0 {
		t.Errorf("duplicate must be a new record, id=%d", dup.ID)
	}
	if dup.Title != "Tarefa concluída antiga - cópia" {
		t.Errorf("Title = %q", dup.Title)
	}
	if dup.Status != models.StatusPending {
		t.Errorf("status forced back to pending, got %q", dup.Status)
	}
	if dup.CompletedAt != nil {
		t.Error("CompletedAt must be unset on the copy")
	}
	// the past due date is carried over untouched: duplication bypasses
	// the create-only temporal rule
	if dup.DueDate == nil || !dup.DueDate.Equal(pastDue) {
		t.Errorf("DueDate = %v, want %v", dup.DueDate, pastDue)
	}
	if dup.Description != "detalhes" || dup.Priority != models.PriorityHigh {
		t.Error("description/priority should be copied")
	}
	if dup.CategoryID == nil || *dup.CategoryID != 3 {
		t.Error("category should be copied")
	}

	if repo.tasks[original.ID].Status != models.StatusCompleted {
		t.Error("original must not be mutated by duplication")
	}
}

func TestStatistics(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo, newFakeCategoryRepo())
	seedTask(t, repo, models.StatusPending, time.Hour)
	seedTask(t, repo, models.StatusCompleted, time.Hour)

	// a pending task whose due date already passed counts as overdue
	late := seedTask(t, repo, models.StatusPending, time.Hour)
	past := time.Now().Add(-24 * time.Hour)
	repo.tasks[late.ID].DueDate = &past

	res := svc.Statistics(context.Background(), 1)
	if !res.Success {
		t.Fatalf("statistics failed: %+v", res)
	}
	stats := res.Data.(*models.TaskStatistics)
	if stats.Total != 3 || stats.Completed != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Overdue != 1 {
		t.Errorf("Overdue = %d, want 1", stats.Overdue)
	}

	repo.statsErr = fmt.Errorf("boom")
	res = svc.Statistics(context.Background(), 1)
	if res.Success || res.ErrorCode != CodeStatisticsError {
		t.Fatalf("expected STATISTICS_ERROR, got %+v", res)
	}
}

func TestMissingID(t *testing.T) {
	svc := newTestService(newFakeTaskRepo(), newFakeCategoryRepo())
	for name, res := range map[string]*Result{
		"get":       svc.GetByID(context.Background(), 0, 1),
		"update":    svc.Update(context.Background(), -1, 1, validation.TaskInput{}),
		"delete":    svc.Delete(context.Background(), 0, 1),
		"complete":  svc.Complete(context.Background(), 0, 1),
		"duplicate": svc.Duplicate(context.Background(), -5, 1),
	} {
		if res.ErrorCode != CodeMissingID {
			t.Errorf("%s: expected MISSING_ID, got %+v", name, res)
		}
	}
}

// Per-id operations must only reach the caller's own tasks; another user's
// task reads as not found and is never touched.
func TestPerIDOperationsScopedToOwner(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo, newFakeCategoryRepo())
	// old enough that only ownership, not the gate, can block deletion
	task := seedTask(t, repo, models.StatusPending, 10*24*time.Hour)

	const intruder = int64(2)
	for name, res := range map[string]*Result{
		"get":       svc.GetByID(context.Background(), task.ID, intruder),
		"update":    svc.Update(context.Background(), task.ID, intruder, validation.TaskInput{Title: strPtr("Título válido")}),
		"delete":    svc.Delete(context.Background(), task.ID, intruder),
		"complete":  svc.Complete(context.Background(), task.ID, intruder),
		"start":     svc.Start(context.Background(), task.ID, intruder),
		"duplicate": svc.Duplicate(context.Background(), task.ID, intruder),
	} {
		if res.ErrorCode != CodeTaskNotFound {
			t.Errorf("%s: expected TASK_NOT_FOUND for foreign task, got %+v", name, res)
		}
	}

	stored := repo.tasks[task.ID]
	if stored == nil {
		t.Fatal("foreign delete must not remove the task")
	}
	if stored.Title != "Tarefa original" || stored.Status != models.StatusPending {
		t.Errorf("foreign operations mutated the task: %+v", stored)
	}
	if len(repo.tasks) != 1 {
		t.Errorf("foreign duplicate must not create a copy, have %d tasks", len(repo.tasks))
	}

	if res := svc.GetByID(context.Background(), task.ID, 1); !res.Success {
		t.Errorf("owner access should still succeed: %+v", res)
	}
}

// The entity setters and the standalone validator enforce the same
// constraints; their messages must never drift apart.
func TestEntityAndValidatorMessagesMatch(t *testing.T) {
	v := validation.NewTaskValidator()
	v.Now = func() time.Time { return testMonday }

	cases := []struct {
		name     string
		in       validation.TaskInput
		field    string
		setField func(*models.Task) error
	}{
		{
			"short title",
			validation.TaskInput{Title: strPtr("ab")},
			"title",
			func(task *models.Task) error { return task.SetTitle("ab") },
		},
		{
			"bad charset",
			validation.TaskInput{Title: strPtr("olá @mundo")},
			"title",
			func(task *models.Task) error { return task.SetTitle("olá @mundo") },
		},
		{
			"long description",
			validation.TaskInput{Description: strPtr(strings.Repeat("x", 1001))},
			"description",
			func(task *models.Task) error { return task.SetDescription(strings.Repeat("x", 1001)) },
		},
		{
			"bad status",
			validation.TaskInput{Status: strPtr("done")},
			"status",
			func(task *models.Task) error { return task.SetStatus("done") },
		},
		{
			"bad priority",
			validation.TaskInput{Priority: strPtr("normal")},
			"priority",
			func(task *models.Task) error { return task.SetPriority("normal") },
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(tt.in, false)
			if len(errs[tt.field]) != 1 {
				t.Fatalf("validator errors for %s = %v", tt.field, errs[tt.field])
			}
			err := tt.setField(models.NewTask(1))
			if err == nil {
				t.Fatal("entity setter should reject")
			}
			if err.Error() != errs[tt.field][0] {
				t.Errorf("message drift: entity %q vs validator %q", err.Error(), errs[tt.field][0])
			}
		})
	}
}
