/*
Package digest sends each user a morning summary of their dashboard.

PURPOSE:
  On a cron schedule (weekday mornings by default) the scheduler sweeps
  every registered user, rebuilds the same aggregates the day dashboard
  shows (late and due-today tasks/actions, installments maturing this
  month, TDV periods in the current cycle, today's birthdays) and mails
  a plain-text digest over SMTP. Without SMTP configured the digest is
  written to the log instead, which is what dev setups run.

GUARANTEES:
  - One user failing never aborts the sweep; the error is logged and the
    next user is processed.
  - A user with nothing due gets no email.

USAGE:
  s := digest.NewScheduler(store, cfg.Digest, cfg.SMTP, log)
  s.Start()
  defer s.Stop()
*/
package digest

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/carioca/estrategia/birthdays"
	"github.com/carioca/estrategia/calendar"
	"github.com/carioca/estrategia/config"
	"github.com/carioca/estrategia/dueness"
	"github.com/carioca/estrategia/installments"
	"github.com/carioca/estrategia/points"
	"github.com/carioca/estrategia/store/sqlite"
)

// Scheduler runs the digest sweep on a cron schedule.
type Scheduler struct {
	Store *sqlite.Store
	Log   *logrus.Logger

	cfg  config.DigestConfig
	smtp config.SMTPConfig
	cron *cron.Cron

	// Now supplies "today" to the sweep. Overridable in tests.
	Now func() calendar.Date
}

// NewScheduler creates a scheduler; call Start to arm it.
func NewScheduler(store *sqlite.Store, cfg config.DigestConfig, smtpCfg config.SMTPConfig, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		Store: store,
		Log:   log,
		cfg:   cfg,
		smtp:  smtpCfg,
		cron:  cron.New(),
		Now:   calendar.Today,
	}
}

// Start registers the cron entry and launches the scheduler goroutine.
func (s *Scheduler) Start() error {
	if !s.cfg.Enabled {
		s.Log.Info("digest disabled, not starting")
		return nil
	}
	if _, err := s.cron.AddFunc(s.cfg.Cron, s.Sweep); err != nil {
		return fmt.Errorf("failed to schedule digest %q: %w", s.cfg.Cron, err)
	}
	s.cron.Start()
	s.Log.WithField("schedule", s.cfg.Cron).Info("digest scheduler started")
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep builds and delivers a digest for every registered user. Each
// user is handled independently so one failure doesn't stop the rest.
func (s *Scheduler) Sweep() {
	ctx := context.Background()
	users, err := s.Store.ListUsers(ctx)
	if err != nil {
		s.Log.WithError(err).Error("digest sweep failed to list users")
		return
	}

	today := s.Now()
	for _, u := range users {
		body, err := s.buildFor(ctx, u.Email, today)
		if err != nil {
			s.Log.WithError(err).WithField("user", u.Email).Error("digest build failed")
			continue
		}
		if body == "" {
			continue
		}
		if err := s.deliver(u, body, today); err != nil {
			s.Log.WithError(err).WithField("user", u.Email).Error("digest delivery failed")
		}
	}
}

// buildFor assembles the plain-text digest body. Empty string means the
// user has nothing worth a mail today.
func (s *Scheduler) buildFor(ctx context.Context, owner string, today calendar.Date) (string, error) {
	var b strings.Builder

	tasks, err := s.Store.ListTasks(ctx, owner)
	if err != nil {
		return "", err
	}
	taskItems := make([]dueness.Item, len(tasks))
	for i, t := range tasks {
		taskItems[i] = dueness.NewItem(t.ID, t.Title, t.DueDate)
	}
	writeSection(&b, "Tarefas", taskItems, today)

	actions, err := s.Store.ListActions(ctx, owner)
	if err != nil {
		return "", err
	}
	actionItems := make([]dueness.Item, len(actions))
	for i, a := range actions {
		actionItems[i] = dueness.NewItem(a.ID, a.Title, a.DueDate)
	}
	writeSection(&b, "Ações", actionItems, today)

	consortium, err := s.Store.ListConsortiumPlans(ctx, owner)
	if err != nil {
		return "", err
	}
	plans := make([]installments.Plan, len(consortium))
	for i, rec := range consortium {
		plans[i] = installments.Plan{
			ID:       rec.ID,
			Proposal: rec.Proposal,
			SaleDate: calendar.ParseISO(rec.SaleDate),
			Category: installments.Category(rec.Category),
			Value:    installments.ParseValue(rec.Value),
			Paid:     rec.Paid,
		}
	}
	if due := installments.DueThisMonth(plans, today); len(due) > 0 {
		fmt.Fprintf(&b, "Consórcio com parcela no mês:\n")
		for _, p := range due {
			fmt.Fprintf(&b, "  - proposta %s (%s)\n", p.Proposal, p.Value.String())
		}
	}

	tdv, err := s.Store.ListTDVPlans(ctx, owner)
	if err != nil {
		return "", err
	}
	tdvPlans := make([]points.Plan, len(tdv))
	for i, rec := range tdv {
		tdvPlans[i] = points.Plan{
			ID:        rec.ID,
			Proposal:  rec.Proposal,
			Remaining: rec.RemainingMonths,
			NextDue:   rec.NextDue,
			Points:    rec.Points,
			SaleDate:  calendar.ParseISO(rec.SaleDate),
		}
	}
	if upcoming := points.Upcoming(tdvPlans, today); len(upcoming) > 0 {
		fmt.Fprintf(&b, "TDV no ciclo (%d pontos no mês):\n", points.ThisMonth(tdvPlans, today))
		for _, p := range upcoming {
			fmt.Fprintf(&b, "  - proposta %s (%d pontos)\n", p.Proposal, p.Points)
		}
	}

	members, err := s.Store.ListMembers(ctx, owner)
	if err != nil {
		return "", err
	}
	people := make([]birthdays.Person, len(members))
	for i, m := range members {
		people[i] = birthdays.Person{ID: m.ID, Name: m.Name, Birth: m.BirthDate}
	}
	if celebrants := birthdays.ExactToday(people, today); len(celebrants) > 0 {
		fmt.Fprintf(&b, "Aniversariantes de hoje:\n")
		for _, p := range celebrants {
			fmt.Fprintf(&b, "  - %s\n", p.Name)
		}
	}

	return b.String(), nil
}

func writeSection(b *strings.Builder, label string, items []dueness.Item, today calendar.Date) {
	buckets := dueness.Classify(items, today)
	if len(buckets.Overdue) == 0 && len(buckets.DueToday) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", label)
	for _, it := range dueness.SortByDate(buckets.Overdue) {
		fmt.Fprintf(b, "  - ATRASADA: %s (%s)\n", it.Title, it.Due.ISO())
	}
	for _, it := range dueness.SortByDate(buckets.DueToday) {
		fmt.Fprintf(b, "  - hoje: %s\n", it.Title)
	}
}

func (s *Scheduler) deliver(u sqlite.User, body string, today calendar.Date) error {
	subject := fmt.Sprintf("Resumo do dia %s", today.ISO())

	if s.smtp.Host == "" {
		s.Log.WithFields(logrus.Fields{
			"user":    u.Email,
			"subject": subject,
		}).Infof("digest (no SMTP configured):\n%s", body)
		return nil
	}

	e := email.NewEmail()
	e.From = s.smtp.From
	e.To = []string{u.Email}
	e.Subject = subject
	greeting := "Bom dia"
	if u.Name != "" {
		greeting = fmt.Sprintf("Bom dia, %s", u.Name)
	}
	e.Text = []byte(fmt.Sprintf("%s!\n\n%s", greeting, body))

	addr := fmt.Sprintf("%s:%d", s.smtp.Host, s.smtp.Port)
	auth := smtp.PlainAuth("", s.smtp.Username, s.smtp.Password, s.smtp.Host)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}

	s.Log.WithField("user", u.Email).Info("digest sent")
	return nil
}
