package validation

import (
	"fmt"
	"time"

	"taskhub/internal/models"
)

// MinDeleteAgeDays is the minimum whole-day age a task must reach before it
// may be deleted.
const MinDeleteAgeDays = 5

// Gate decides whether a mutation of an existing task is allowed given its
// current persisted state, independent of the new payload's validity. It
// must run before structural validation on the update/delete path.
type Gate struct {
	Now func() time.Time
}

func NewGate() *Gate {
	return &Gate{Now: time.Now}
}

// CanUpdate returns no messages only when the task is still pending.
func (g *Gate) CanUpdate(t *models.Task) []string {
	if t.Status == models.StatusPending {
		return nil
	}
	return []string{fmt.Sprintf(
		"Apenas tarefas pendentes podem ser editadas. Status atual: %s.",
		models.StatusLabel(t.Status),
	)}
}

// CanDelete checks the two independent delete conditions: pending status and
// minimum age. Both violations report together when both apply. Age is a
// whole-day difference with no rounding up, so 4 days 23 hours counts as 4.
func (g *Gate) CanDelete(t *models.Task) []string {
	var msgs []string
	if t.Status != models.StatusPending {
		msgs = append(msgs, fmt.Sprintf(
			"Apenas tarefas pendentes podem ser excluídas. Status atual: %s.",
			models.StatusLabel(t.Status),
		))
	}
	days := int(g.Now().Sub(t.CreatedAt).Hours() / 24)
	if days < MinDeleteAgeDays {
		msgs = append(msgs, fmt.Sprintf(
			"A tarefa só pode ser excluída após %d dias da criação. Aguarde mais %d dia(s).",
			MinDeleteAgeDays, MinDeleteAgeDays-days,
		))
	}
	return msgs
}
