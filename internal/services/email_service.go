package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"taskhub/internal/models"
)

type EmailService interface {
	SendWelcomeEmail(email, name string) error
	SendDueTaskReminder(email string, task *models.Task) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendWelcomeEmail(email, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Bem-vindo ao TaskHub!")

	body := fmt.Sprintf(`
		<h2>Bem-vindo ao TaskHub, %s!</h2>
		<p>Sua conta foi criada com sucesso.</p>
		<p>Organize suas tarefas e acompanhe seus prazos em um só lugar.</p>
	`, name)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) SendDueTaskReminder(email string, task *models.Task) error {
	due := "—"
	if task.DueDate != nil {
		due = task.DueDate.Format("02/01/2006 15:04")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Lembrete: tarefa perto do vencimento")

	body := fmt.Sprintf(`
		<h3>Sua tarefa está perto do vencimento</h3>
		<p><strong>%s</strong></p>
		<p>Prioridade: %s<br>Vencimento: %s</p>
	`, task.Title, task.Priority, due)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}
	return nil
}
