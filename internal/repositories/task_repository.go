package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"taskhub/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error
	Statistics(ctx context.Context, userID int64) (*models.TaskStatistics, error)

	// reminder loop
	ListDueWithin(ctx context.Context, window time.Duration, limit int) ([]models.Task, error)
	SetReminderSent(ctx context.Context, id int64) error
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, user_id, category_id, title, description, status, priority,
       due_date, completed_at, last_reminded_at, created_at, updated_at`

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (
			user_id, category_id, title, description, status, priority,
			due_date, completed_at, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		task.UserID, task.CategoryID, task.Title, task.Description,
		task.Status, task.Priority, task.DueDate, task.CompletedAt,
		task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.UserID, &task.CategoryID, &task.Title, &task.Description,
		&task.Status, &task.Priority, &task.DueDate, &task.CompletedAt,
		&task.LastRemindedAt, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM tasks`

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argID))
		args = append(args, *filter.UserID)
		argID++
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", argID))
		args = append(args, *filter.CategoryID)
		argID++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", argID))
		args = append(args, *filter.Priority)
		argID++
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.CategoryID, &t.Title, &t.Description,
			&t.Status, &t.Priority, &t.DueDate, &t.CompletedAt,
			&t.LastRemindedAt, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			category_id=$1, title=$2, description=$3, status=$4,
			priority=$5, due_date=$6, completed_at=$7, updated_at=$8
		WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query,
		task.CategoryID, task.Title, task.Description, task.Status,
		task.Priority, task.DueDate, task.CompletedAt, task.UpdatedAt, task.ID,
	)
	return err
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (r *taskRepository) Statistics(ctx context.Context, userID int64) (*models.TaskStatistics, error) {
	stats := &models.TaskStatistics{
		ByStatus:   map[models.TaskStatus]int{},
		ByPriority: map[models.TaskPriority]int{},
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT status, priority, COUNT(*) FROM tasks WHERE user_id = $1 GROUP BY status, priority`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status models.TaskStatus
		var priority models.TaskPriority
		var count int
		if err := rows.Scan(&status, &priority, &count); err != nil {
			return nil, err
		}
		stats.Total += count
		stats.ByStatus[status] += count
		stats.ByPriority[priority] += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	stats.Completed = stats.ByStatus[models.StatusCompleted]

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tasks
		WHERE user_id = $1
		  AND due_date IS NOT NULL AND due_date < NOW()
		  AND status NOT IN ('completed','cancelled')`,
		userID).Scan(&stats.Overdue)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *taskRepository) ListDueWithin(ctx context.Context, window time.Duration, limit int) ([]models.Task, error) {
	q := `
SELECT ` + taskColumns + `
FROM tasks
WHERE due_date IS NOT NULL
  AND due_date > NOW()
  AND due_date <= NOW() + $1 * INTERVAL '1 second'
  AND last_reminded_at IS NULL
  AND status IN ('pending','in_progress')
ORDER BY due_date ASC
LIMIT $2`
	rows, err := r.db.QueryContext(ctx, q, int64(window.Seconds()), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.CategoryID, &t.Title, &t.Description,
			&t.Status, &t.Priority, &t.DueDate, &t.CompletedAt,
			&t.LastRemindedAt, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *taskRepository) SetReminderSent(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET last_reminded_at = NOW() WHERE id=$1`, id)
	return err
}
