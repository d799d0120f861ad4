package validation

import (
	"strings"
	"testing"
	"time"

	"taskhub/internal/models"
)

func gateAt(now time.Time) *Gate {
	g := NewGate()
	g.Now = func() time.Time { return now }
	return g
}

func taskWith(status models.TaskStatus, age time.Duration, now time.Time) *models.Task {
	task := models.NewTask(1)
	task.Status = status
	task.CreatedAt = now.Add(-age)
	return task
}

func TestCanUpdate(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	g := gateAt(now)

	tests := []struct {
		status  models.TaskStatus
		allowed bool
		label   string
	}{
		{models.StatusPending, true, ""},
		{models.StatusInProgress, false, "Em andamento"},
		{models.StatusCompleted, false, "Concluída"},
		{models.StatusCancelled, false, "Cancelada"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			msgs := g.CanUpdate(taskWith(tt.status, time.Hour, now))
			if tt.allowed {
				if len(msgs) != 0 {
					t.Fatalf("update should be allowed, got %v", msgs)
				}
				return
			}
			if len(msgs) != 1 {
				t.Fatalf("expected one message, got %v", msgs)
			}
			if !strings.Contains(msgs[0], tt.label) {
				t.Errorf("message %q should name current status %q", msgs[0], tt.label)
			}
		})
	}
}

func TestCanDeleteAgeBoundary(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	g := gateAt(now)

	tests := []struct {
		name    string
		age     time.Duration
		allowed bool
		wantMsg string
	}{
		{"exactly 5 days", 5 * 24 * time.Hour, true, ""},
		{"well past 5 days", 10 * 24 * time.Hour, true, ""},
		{"4 days 23 hours", 4*24*time.Hour + 23*time.Hour, false, "Aguarde mais 1 dia(s)"},
		{"just created", time.Minute, false, "Aguarde mais 5 dia(s)"},
		{"2 days old", 2*24*time.Hour + time.Hour, false, "Aguarde mais 3 dia(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs := g.CanDelete(taskWith(models.StatusPending, tt.age, now))
			if tt.allowed {
				if len(msgs) != 0 {
					t.Fatalf("delete should be allowed, got %v", msgs)
				}
				return
			}
			if len(msgs) != 1 {
				t.Fatalf("expected one message, got %v", msgs)
			}
			if !strings.Contains(msgs[0], tt.wantMsg) {
				t.Errorf("message %q should contain %q", msgs[0], tt.wantMsg)
			}
		})
	}
}

func TestCanDeleteStatus(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	g := gateAt(now)

	// non-pending but old enough: one message, about status
	msgs := g.CanDelete(taskWith(models.StatusCompleted, 10*24*time.Hour, now))
	if len(msgs) != 1 || !strings.Contains(msgs[0], "Concluída") {
		t.Errorf("expected single status message, got %v", msgs)
	}
}

func TestCanDeleteReportsBothViolations(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	g := gateAt(now)

	msgs := g.CanDelete(taskWith(models.StatusInProgress, 24*time.Hour, now))
	if len(msgs) != 2 {
		t.Fatalf("expected two messages, got %v", msgs)
	}
	if !strings.Contains(msgs[0], "Em andamento") {
		t.Errorf("first message should name the status: %q", msgs[0])
	}
	if !strings.Contains(msgs[1], "Aguarde mais 4 dia(s)") {
		t.Errorf("second message should state remaining days: %q", msgs[1])
	}
}
