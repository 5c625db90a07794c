// Package scheduler runs the portal's periodic background jobs: appointment
// reminders honoring each user's lead-time preferences, and re-broadcast of
// emergency alerts that stay active for too long.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/cla-bangladesh/cla-portal/app"
	"github.com/cla-bangladesh/cla-portal/models"
)

// staleAlertAge is how long an alert may stay active before it is
// re-broadcast to admins.
const staleAlertAge = 15 * time.Minute

// Scheduler handles periodic background jobs for the portal
type Scheduler struct {
	cron         *cron.Cron
	Orchestrator *app.App

	// sent tracks reminder keys already delivered so a booking is
	// reminded at most once per lead time.
	sent map[string]bool
}

// NewScheduler creates a new scheduler instance
func NewScheduler(orchestrator *app.App) *Scheduler {
	return &Scheduler{
		cron:         cron.New(cron.WithLocation(time.UTC)),
		Orchestrator: orchestrator,
		sent:         map[string]bool{},
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Check for upcoming appointments every minute
	_, err := s.cron.AddFunc("* * * * *", s.processAppointmentReminders)
	if err != nil {
		zap.S().Errorw("failed to register appointment reminder job", "error", err)
	}

	// Re-broadcast long-running active alerts every 5 minutes
	_, err = s.cron.AddFunc("*/5 * * * *", s.processStaleAlerts)
	if err != nil {
		zap.S().Errorw("failed to register stale alert job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Portal scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Portal scheduler stopped")
}

// reminderLead binds a lead time to the settings flag that enables it.
type reminderLead struct {
	d       time.Duration
	enabled func(models.NotificationSettings) bool
	label   string
}

var reminderLeads = []reminderLead{
	{24 * time.Hour, func(n models.NotificationSettings) bool { return n.RemindOneDay }, "in 1 day"},
	{time.Hour, func(n models.NotificationSettings) bool { return n.RemindOneHour }, "in 1 hour"},
	{10 * time.Minute, func(n models.NotificationSettings) bool { return n.RemindTenMinutes }, "in 10 minutes"},
}

// processAppointmentReminders raises a notification for each confirmed
// booking whose start time crosses one of the user's enabled lead times
func (s *Scheduler) processAppointmentReminders() {
	user := s.Orchestrator.CurrentUser()
	if user == nil || user.NotificationSettings == nil {
		return
	}
	settings := *user.NotificationSettings

	now := time.Now().UTC()
	for _, a := range s.Orchestrator.Appointments() {
		if a.Status != models.AppointmentConfirmed {
			continue
		}
		start, err := time.Parse("2006-01-02 15:04", a.Date+" "+a.Time)
		if err != nil {
			zap.S().Debugw("skipping booking with unparseable start", "bookingId", a.ID, "date", a.Date, "time", a.Time)
			continue
		}
		until := start.Sub(now)
		if until <= 0 {
			continue
		}

		for _, lead := range reminderLeads {
			if !lead.enabled(settings) || until > lead.d {
				continue
			}
			key := fmt.Sprintf("%s/%s", a.ID, lead.label)
			if s.sent[key] {
				continue
			}
			s.sent[key] = true

			counterpart := a.LawyerName
			if user.ID == a.LawyerID {
				counterpart = a.ClientName
			}
			s.Orchestrator.RaiseNotification(models.Notification{
				UserID:   user.ID,
				Type:     models.NotificationAppointment,
				Title:    fmt.Sprintf("Consultation with %s starts %s", counterpart, lead.label),
				Body:     fmt.Sprintf("%s at %s (%s)", a.Date, a.Time, a.Mode),
				Link:     &models.NotificationLink{Page: models.SubPageAppointments},
				Severity: models.SeverityNormal,
			})
			zap.S().Infow("Raised appointment reminder",
				"bookingId", a.ID,
				"lead", lead.label,
			)
		}
	}
}

// processStaleAlerts reminds admins about alerts that have stayed active
// past the stale threshold
func (s *Scheduler) processStaleAlerts() {
	user := s.Orchestrator.CurrentUser()
	if user == nil || !user.IsAdmin() {
		return
	}

	now := time.Now().UTC()
	stale := 0
	for _, alert := range s.Orchestrator.Alerts() {
		if alert.Status != models.AlertActive {
			continue
		}
		age := now.Sub(time.UnixMilli(alert.Timestamp))
		if age < staleAlertAge {
			continue
		}
		key := fmt.Sprintf("stale-alert/%s", alert.ID)
		if s.sent[key] {
			continue
		}
		s.sent[key] = true
		stale++

		s.Orchestrator.RaiseNotification(models.Notification{
			UserID:   user.ID,
			Type:     models.NotificationSystem,
			Title:    fmt.Sprintf("Emergency alert from %s is still active", alert.UserName),
			Body:     fmt.Sprintf("Raised %d minutes ago and not yet resolved.", int(age.Minutes())),
			Severity: models.SeverityCritical,
		})
	}

	if stale > 0 {
		zap.S().Infow("Re-broadcast stale alerts", "count", stale)
	}
}
