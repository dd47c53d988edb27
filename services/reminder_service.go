// services/reminder_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"iqr-control-backend/models"
	"iqr-control-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Notifier delivers a text message to a phone number
type Notifier interface {
	Send(ctx context.Context, to, body string) error
}

// TwilioNotifier sends SMS, or WhatsApp for numbers in E.164 form
type TwilioNotifier struct {
	client   *twilio.RestClient
	from     string
	whatsApp bool
}

func NewTwilioNotifier(accountSID, authToken, from string, whatsApp bool) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from:     from,
		whatsApp: whatsApp,
	}
}

func (n *TwilioNotifier) Send(_ context.Context, to, body string) error {
	from := n.from
	if n.whatsApp && strings.HasPrefix(to, "+") {
		to = "whatsapp:" + to
		from = "whatsapp:" + from
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio create message: %w", err)
	}
	if resp.ErrorMessage != nil {
		return errors.New(*resp.ErrorMessage)
	}
	return nil
}

// LogNotifier only logs; used when Twilio is not configured
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notifier")}
}

func (n *LogNotifier) Send(_ context.Context, to, body string) error {
	n.logger.Info("reminder not sent, no SMS provider configured", zap.String("to", to), zap.String("body", body))
	return nil
}

// SweepResult summarizes one run of the subscription sweep
type SweepResult struct {
	Deactivated int `json:"deactivated"`
	Reminded    int `json:"reminded"`
	Failed      int `json:"failed"`
}

// ReminderService runs the daily subscription sweep: expired customers are
// deactivated and customers close to expiry get a reminder message.
type ReminderService struct {
	db                *gorm.DB
	customers         *CustomerService
	notifier          Notifier
	logger            *zap.Logger
	reminderDays      int
	deactivateExpired bool
	now               func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

func NewReminderService(db *gorm.DB, customers *CustomerService, notifier Notifier, reminderDays int, deactivateExpired bool, logger *zap.Logger) *ReminderService {
	if reminderDays <= 0 {
		reminderDays = 7
	}
	return &ReminderService{
		db:                db,
		customers:         customers,
		notifier:          notifier,
		logger:            logger.Named("reminders"),
		reminderDays:      reminderDays,
		deactivateExpired: deactivateExpired,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// StartScheduler registers the sweep on the given cron spec and starts the cron runner
func (s *ReminderService) StartScheduler(spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return errors.New("reminder scheduler already started")
	}

	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := s.Sweep(ctx); err != nil {
			s.logger.Error("subscription sweep failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}

	c.Start()
	s.cron = c
	s.logger.Info("reminder scheduler started", zap.String("spec", spec))
	return nil
}

// StopScheduler waits for a running sweep to finish or ctx to expire
func (s *ReminderService) StopScheduler(ctx context.Context) {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c == nil {
		return
	}
	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
	}
	s.logger.Info("reminder scheduler stopped")
}

func (s *ReminderService) Sweep(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	if s.deactivateExpired {
		expired, err := s.customers.DeactivateExpired(ctx)
		if err != nil {
			return result, err
		}
		result.Deactivated = len(expired)
	}

	due, err := s.dueForReminder(ctx)
	if err != nil {
		return result, err
	}

	today := utils.BeginningOfDay(s.now())
	for _, customer := range due {
		days := utils.DaysBetween(today, customer.ExpiryDate)
		if err := s.notifier.Send(ctx, customer.Phone, reminderMessage(customer, days)); err != nil {
			result.Failed++
			s.logger.Warn("failed to send reminder",
				zap.String("customer_id", customer.ID.String()),
				zap.Error(err))
			continue
		}

		result.Reminded++
		if err := RecordActivity(s.db.WithContext(ctx), models.ActivityReminderSent,
			fmt.Sprintf("تم إرسال تذكير تجديد الاشتراك إلى العميل: %s", customer.Name), ptr(customer.ID)); err != nil {
			s.logger.Warn("failed to record reminder activity", zap.Error(err))
		}
	}

	s.logger.Info("subscription sweep completed",
		zap.Int("deactivated", result.Deactivated),
		zap.Int("reminded", result.Reminded),
		zap.Int("failed", result.Failed))
	return result, nil
}

func (s *ReminderService) dueForReminder(ctx context.Context) ([]models.Customer, error) {
	candidates, err := s.customers.Expiring(ctx, s.reminderDays)
	if err != nil {
		return nil, fmt.Errorf("find expiring customers: %w", err)
	}

	due := candidates[:0]
	for _, customer := range candidates {
		if customer.IsActive && customer.Phone != "" {
			due = append(due, customer)
		}
	}
	return due, nil
}

func reminderMessage(customer models.Customer, days int) string {
	if days <= 0 {
		return fmt.Sprintf("عزيزي %s، ينتهي اشتراكك اليوم. يرجى التجديد للاستمرار في الخدمة.", customer.Name)
	}
	return fmt.Sprintf("عزيزي %s، سينتهي اشتراكك خلال %d يوم بتاريخ %s. يرجى التجديد للاستمرار في الخدمة.",
		customer.Name, days, customer.ExpiryDate.Format(utils.DateLayout))
}
