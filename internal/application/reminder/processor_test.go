package reminder

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/shared/logger"
)

type stubRepository struct {
	UpdateFunc               func(ctx context.Context, a *assistance.Assistance) error
	FindScheduledBetweenFunc func(ctx context.Context, from, to time.Time) ([]*assistance.Assistance, error)
	FindScheduledBeforeFunc  func(ctx context.Context, cutoff time.Time) ([]*assistance.Assistance, error)
	FindOpenOlderThanFunc    func(ctx context.Context, openedBefore time.Time, statuses []vo.Status) ([]*assistance.Assistance, error)
	SaveTokenFunc            func(ctx context.Context, t *assistance.Token) error

	savedTokens []*assistance.Token
}

func (s *stubRepository) Save(ctx context.Context, a *assistance.Assistance) error   { return nil }
func (s *stubRepository) DeleteCascade(ctx context.Context, id uint) error           { return nil }
func (s *stubRepository) SavePhoto(ctx context.Context, p *assistance.Photo) error   { return nil }
func (s *stubRepository) UpdateToken(ctx context.Context, t *assistance.Token) error { return nil }

func (s *stubRepository) GetByID(ctx context.Context, id uint) (*assistance.Assistance, error) {
	return nil, assistance.ErrNotFound
}

func (s *stubRepository) GetByTokenValue(ctx context.Context, value string) (*assistance.Assistance, *assistance.Token, error) {
	return nil, nil, assistance.ErrTokenNotFound
}

func (s *stubRepository) List(ctx context.Context, filter assistance.Filter) ([]*assistance.Assistance, int64, error) {
	return nil, 0, nil
}

func (s *stubRepository) FindPhotosByAssistanceID(ctx context.Context, assistanceID uint) ([]*assistance.Photo, error) {
	return nil, nil
}

func (s *stubRepository) CountByStatus(ctx context.Context) (map[vo.Status]int64, error) {
	return map[vo.Status]int64{}, nil
}

func (s *stubRepository) CountByAlertLevel(ctx context.Context) (map[int]int64, error) {
	return map[int]int64{}, nil
}

func (s *stubRepository) Update(ctx context.Context, a *assistance.Assistance) error {
	if s.UpdateFunc != nil {
		return s.UpdateFunc(ctx, a)
	}
	return nil
}

func (s *stubRepository) FindScheduledBetween(ctx context.Context, from, to time.Time) ([]*assistance.Assistance, error) {
	if s.FindScheduledBetweenFunc != nil {
		return s.FindScheduledBetweenFunc(ctx, from, to)
	}
	return nil, nil
}

func (s *stubRepository) FindScheduledBefore(ctx context.Context, cutoff time.Time) ([]*assistance.Assistance, error) {
	if s.FindScheduledBeforeFunc != nil {
		return s.FindScheduledBeforeFunc(ctx, cutoff)
	}
	return nil, nil
}

func (s *stubRepository) FindOpenOlderThan(ctx context.Context, openedBefore time.Time, statuses []vo.Status) ([]*assistance.Assistance, error) {
	if s.FindOpenOlderThanFunc != nil {
		return s.FindOpenOlderThanFunc(ctx, openedBefore, statuses)
	}
	return nil, nil
}

func (s *stubRepository) SaveToken(ctx context.Context, t *assistance.Token) error {
	if s.SaveTokenFunc != nil {
		return s.SaveTokenFunc(ctx, t)
	}
	s.savedTokens = append(s.savedTokens, t)
	return nil
}

type stubActivityLog struct {
	appended []*assistance.ActivityLogEntry
}

func (s *stubActivityLog) Append(ctx context.Context, entry *assistance.ActivityLogEntry) error {
	s.appended = append(s.appended, entry)
	return nil
}

func (s *stubActivityLog) FindByAssistanceID(ctx context.Context, assistanceID uint) ([]*assistance.ActivityLogEntry, error) {
	return s.appended, nil
}

type stubNotifier struct {
	SameDayReminderFunc  func(ctx context.Context, a *assistance.Assistance) error
	FollowUpReminderFunc func(ctx context.Context, a *assistance.Assistance) error
	EscalationAlertFunc  func(ctx context.Context, a *assistance.Assistance, level int) error

	sent []string
}

func (s *stubNotifier) RequestCreated(ctx context.Context, a *assistance.Assistance) error {
	return nil
}

func (s *stubNotifier) RequestAccepted(ctx context.Context, a *assistance.Assistance) error {
	return nil
}

func (s *stubNotifier) RequestRejected(ctx context.Context, a *assistance.Assistance) error {
	return nil
}

func (s *stubNotifier) RequestScheduled(ctx context.Context, a *assistance.Assistance, rescheduled bool) error {
	return nil
}

func (s *stubNotifier) RequestCompleted(ctx context.Context, a *assistance.Assistance) error {
	return nil
}

func (s *stubNotifier) RequestCancelled(ctx context.Context, a *assistance.Assistance) error {
	return nil
}

func (s *stubNotifier) RequestReassigned(ctx context.Context, a *assistance.Assistance) error {
	return nil
}

func (s *stubNotifier) SameDayReminder(ctx context.Context, a *assistance.Assistance) error {
	if s.SameDayReminderFunc != nil {
		return s.SameDayReminderFunc(ctx, a)
	}
	s.sent = append(s.sent, fmt.Sprintf("same_day:%d", a.ID()))
	return nil
}

func (s *stubNotifier) FollowUpReminder(ctx context.Context, a *assistance.Assistance) error {
	if s.FollowUpReminderFunc != nil {
		return s.FollowUpReminderFunc(ctx, a)
	}
	s.sent = append(s.sent, fmt.Sprintf("follow_up:%d", a.ID()))
	return nil
}

func (s *stubNotifier) EscalationAlert(ctx context.Context, a *assistance.Assistance, level int) error {
	if s.EscalationAlertFunc != nil {
		return s.EscalationAlertFunc(ctx, a, level)
	}
	s.sent = append(s.sent, fmt.Sprintf("escalation:%d:%d", a.ID(), level))
	return nil
}

type stubTokenGenerator struct{ counter int }

func (s *stubTokenGenerator) Generate() (string, error) {
	s.counter++
	return fmt.Sprintf("%063dx", s.counter), nil
}

type stubTxManager struct{}

func (s *stubTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)                   {}
func (nopLogger) Info(msg string, args ...any)                    {}
func (nopLogger) Warn(msg string, args ...any)                    {}
func (nopLogger) Error(msg string, args ...any)                   {}
func (nopLogger) Fatal(msg string, args ...any)                   {}
func (nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Fatalw(msg string, keysAndValues ...interface{}) {}
func (n nopLogger) With(args ...any) logger.Interface             { return n }
func (n nopLogger) Named(name string) logger.Interface            { return n }

type fixtureOpts struct {
	id                    uint
	status                vo.Status
	scheduledAt           *time.Time
	openedAt              time.Time
	alertLevel            int
	validationEmailSentAt *time.Time
}

func buildFixture(t *testing.T, opts fixtureOpts) *assistance.Assistance {
	t.Helper()

	a, err := assistance.ReconstructAssistance(
		opts.id, 1, 2, nil,
		opts.status, vo.UrgencyNormal,
		"Broken intercom at the main entrance", "",
		opts.scheduledAt, "", "",
		opts.alertLevel, 0, opts.validationEmailSentAt,
		1, opts.openedAt, opts.openedAt, nil,
	)
	require.NoError(t, err)
	return a
}

func newTestProcessor(repo *stubRepository, activity *stubActivityLog, notifier *stubNotifier) *Processor {
	return NewProcessor(repo, activity, &stubTokenGenerator{}, &stubTxManager{}, notifier, nopLogger{})
}

func TestProcessor_Run_SameDayReminder(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	scheduledAt := now.Add(3 * time.Hour)
	item := buildFixture(t, fixtureOpts{
		id:          1,
		status:      vo.StatusScheduled,
		scheduledAt: &scheduledAt,
		openedAt:    now.Add(-48 * time.Hour),
	})

	repo := &stubRepository{
		FindScheduledBetweenFunc: func(ctx context.Context, from, to time.Time) ([]*assistance.Assistance, error) {
			return []*assistance.Assistance{item}, nil
		},
	}
	activity := &stubActivityLog{}
	notifier := &stubNotifier{}
	processor := newTestProcessor(repo, activity, notifier)

	stats := processor.Run(context.Background(), now)

	assert.Equal(t, 1, stats.SameDayReminders)
	assert.Equal(t, 0, stats.Failures)
	assert.Equal(t, []string{"same_day:1"}, notifier.sent)
	require.NotNil(t, item.ValidationEmailSentAt())

	// No validation token existed, so the reminder minted one on the fly.
	require.Len(t, repo.savedTokens, 1)
	assert.Equal(t, vo.PurposeValidation, repo.savedTokens[0].Purpose())
	require.Len(t, activity.appended, 1)
	assert.Equal(t, vo.ActorSystem, activity.appended[0].Actor())
}

func TestProcessor_Run_SameDayReminder_OncePerBusinessDay(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	scheduledAt := now.Add(3 * time.Hour)
	item := buildFixture(t, fixtureOpts{
		id:          1,
		status:      vo.StatusScheduled,
		scheduledAt: &scheduledAt,
		openedAt:    now.Add(-48 * time.Hour),
	})

	repo := &stubRepository{
		FindScheduledBetweenFunc: func(ctx context.Context, from, to time.Time) ([]*assistance.Assistance, error) {
			return []*assistance.Assistance{item}, nil
		},
	}
	notifier := &stubNotifier{}
	processor := newTestProcessor(repo, &stubActivityLog{}, notifier)

	first := processor.Run(context.Background(), now)
	second := processor.Run(context.Background(), now.Add(4*time.Hour))

	assert.Equal(t, 1, first.SameDayReminders)
	assert.Equal(t, 0, second.SameDayReminders, "a second run the same day sends nothing")
	assert.Len(t, notifier.sent, 1)
}

func TestProcessor_Run_SameDayReminder_KeepsExistingToken(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	scheduledAt := now.Add(3 * time.Hour)
	item := buildFixture(t, fixtureOpts{
		id:          1,
		status:      vo.StatusScheduled,
		scheduledAt: &scheduledAt,
		openedAt:    now.Add(-48 * time.Hour),
	})
	existing, err := assistance.ReconstructToken(
		5, item.ID(), vo.PurposeValidation,
		"00000000000000000000000000000000validation", now.Add(-24*time.Hour), nil)
	require.NoError(t, err)
	item.AttachToken(existing)

	repo := &stubRepository{
		FindScheduledBetweenFunc: func(ctx context.Context, from, to time.Time) ([]*assistance.Assistance, error) {
			return []*assistance.Assistance{item}, nil
		},
	}
	processor := newTestProcessor(repo, &stubActivityLog{}, &stubNotifier{})

	stats := processor.Run(context.Background(), now)

	assert.Equal(t, 1, stats.SameDayReminders)
	assert.Empty(t, repo.savedTokens, "an active validation token is reused, not replaced")
	assert.Same(t, existing, item.TokenFor(vo.PurposeValidation))
}

func TestProcessor_Run_FollowUpReminder(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	scheduledAt := now.Add(-72 * time.Hour)
	item := buildFixture(t, fixtureOpts{
		id:          3,
		status:      vo.StatusScheduled,
		scheduledAt: &scheduledAt,
		openedAt:    now.Add(-96 * time.Hour),
	})

	repo := &stubRepository{
		FindScheduledBeforeFunc: func(ctx context.Context, cutoff time.Time) ([]*assistance.Assistance, error) {
			return []*assistance.Assistance{item}, nil
		},
	}
	notifier := &stubNotifier{}
	processor := newTestProcessor(repo, &stubActivityLog{}, notifier)

	stats := processor.Run(context.Background(), now)

	assert.Equal(t, 1, stats.FollowUps)
	assert.Equal(t, 0, stats.SameDayReminders)
	assert.Equal(t, []string{"follow_up:3"}, notifier.sent)
	assert.Equal(t, 1, item.ValidationReminderCount())

	// The follow-up counts as today's contact, so a rerun stays quiet.
	rerun := processor.Run(context.Background(), now.Add(2*time.Hour))
	assert.Equal(t, 0, rerun.FollowUps)
	assert.Equal(t, 1, item.ValidationReminderCount())
}

func TestProcessor_Run_Escalation(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		openedAgo   time.Duration
		alertLevel  int
		wantLevel   int
		wantEscalated bool
	}{
		{"3 days at level 0", 3*24*time.Hour + time.Hour, 0, 1, true},
		{"8 days at level 1", 8 * 24 * time.Hour, 1, 2, true},
		{"15 days at level 0 moves one step only", 15 * 24 * time.Hour, 0, 1, true},
		{"4 days already at level 1", 4 * 24 * time.Hour, 1, 0, false},
		{"15 days at level 3 stays", 15 * 24 * time.Hour, 3, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := buildFixture(t, fixtureOpts{
				id:         7,
				status:     vo.StatusPendingResponse,
				openedAt:   now.Add(-tt.openedAgo),
				alertLevel: tt.alertLevel,
			})

			repo := &stubRepository{
				FindOpenOlderThanFunc: func(ctx context.Context, openedBefore time.Time, statuses []vo.Status) ([]*assistance.Assistance, error) {
					return []*assistance.Assistance{item}, nil
				},
			}
			notifier := &stubNotifier{}
			activity := &stubActivityLog{}
			processor := newTestProcessor(repo, activity, notifier)

			stats := processor.Run(context.Background(), now)

			if !tt.wantEscalated {
				assert.Equal(t, 0, stats.Escalations)
				assert.Equal(t, tt.alertLevel, item.AlertLevel())
				assert.Empty(t, notifier.sent)
				return
			}
			assert.Equal(t, 1, stats.Escalations)
			assert.Equal(t, tt.wantLevel, item.AlertLevel())
			assert.Equal(t, []string{fmt.Sprintf("escalation:7:%d", tt.wantLevel)}, notifier.sent)
			require.Len(t, activity.appended, 1)
		})
	}
}

func TestProcessor_Run_FailureIsolation(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	scheduledAt := now.Add(3 * time.Hour)
	broken := buildFixture(t, fixtureOpts{
		id:          1,
		status:      vo.StatusScheduled,
		scheduledAt: &scheduledAt,
		openedAt:    now.Add(-48 * time.Hour),
	})
	healthy := buildFixture(t, fixtureOpts{
		id:          2,
		status:      vo.StatusScheduled,
		scheduledAt: &scheduledAt,
		openedAt:    now.Add(-48 * time.Hour),
	})

	repo := &stubRepository{
		FindScheduledBetweenFunc: func(ctx context.Context, from, to time.Time) ([]*assistance.Assistance, error) {
			return []*assistance.Assistance{broken, healthy}, nil
		},
	}
	notifier := &stubNotifier{}
	notifier.SameDayReminderFunc = func(ctx context.Context, a *assistance.Assistance) error {
		if a.ID() == broken.ID() {
			return fmt.Errorf("smtp connection refused")
		}
		notifier.sent = append(notifier.sent, fmt.Sprintf("same_day:%d", a.ID()))
		return nil
	}
	processor := newTestProcessor(repo, &stubActivityLog{}, notifier)

	stats := processor.Run(context.Background(), now)

	assert.Equal(t, 1, stats.SameDayReminders)
	assert.Equal(t, 1, stats.Failures)
	assert.Equal(t, []string{"same_day:2"}, notifier.sent)
	assert.Nil(t, broken.ValidationEmailSentAt(), "a failed send does not burn the daily slot")
	assert.NotNil(t, healthy.ValidationEmailSentAt())
}
