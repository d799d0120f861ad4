package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"taskhub/internal/models"
)

// Generator renders statistics reports; an interface so handlers can be
// tested with a fake.
type Generator interface {
	GenerateStatisticsReport(userName string, stats *models.TaskStatistics) (string, error)
}

type ReportGenerator struct {
	RootDir string
}

func NewReportGenerator(rootDir string) *ReportGenerator {
	return &ReportGenerator{RootDir: filepath.Clean(rootDir)}
}

// GenerateStatisticsReport writes a one-page PDF summary under RootDir and
// returns the absolute file path.
func (g *ReportGenerator) GenerateStatisticsReport(userName string, stats *models.TaskStatistics) (string, error) {
	filename := fmt.Sprintf("task_report_%s.pdf", time.Now().Format("20060102_150405"))
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, tr("Relatório de tarefas"))
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 8, tr(fmt.Sprintf("Usuário: %s", userName)))
	doc.Ln(8)
	doc.Cell(0, 8, tr(fmt.Sprintf("Gerado em: %s", time.Now().Format("02/01/2006 15:04"))))
	doc.Ln(12)

	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, tr("Totais"))
	doc.Ln(9)
	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 7, tr(fmt.Sprintf("Total de tarefas: %d", stats.Total)))
	doc.Ln(7)
	doc.Cell(0, 7, tr(fmt.Sprintf("Concluídas: %d", stats.Completed)))
	doc.Ln(7)
	doc.Cell(0, 7, tr(fmt.Sprintf("Vencidas: %d", stats.Overdue)))
	doc.Ln(11)

	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, tr("Por status"))
	doc.Ln(9)
	doc.SetFont("Helvetica", "", 11)
	for _, status := range []models.TaskStatus{
		models.StatusPending, models.StatusInProgress,
		models.StatusCompleted, models.StatusCancelled,
	} {
		doc.Cell(0, 7, tr(fmt.Sprintf("%s: %d", models.StatusLabel(status), stats.ByStatus[status])))
		doc.Ln(7)
	}
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, tr("Por prioridade"))
	doc.Ln(9)
	doc.SetFont("Helvetica", "", 11)
	for _, priority := range []models.TaskPriority{
		models.PriorityLow, models.PriorityMedium,
		models.PriorityHigh, models.PriorityUrgent,
	} {
		doc.Cell(0, 7, tr(fmt.Sprintf("%s: %d", priority, stats.ByPriority[priority])))
		doc.Ln(7)
	}

	if err := doc.OutputFileAndClose(absPath); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return absPath, nil
}

func (g *ReportGenerator) ensureTarget(filename string) (string, error) {
	dir := filepath.Join(g.RootDir, "reports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	return filepath.Join(dir, filepath.Base(filename)), nil
}
