package usecases

import (
	"context"
	"time"

	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/domain/catalog"
	"zelador/internal/shared/logger"
)

type mockAssistanceRepository struct {
	SaveFunc                     func(ctx context.Context, a *assistance.Assistance) error
	UpdateFunc                   func(ctx context.Context, a *assistance.Assistance) error
	GetByIDFunc                  func(ctx context.Context, id uint) (*assistance.Assistance, error)
	GetByTokenValueFunc          func(ctx context.Context, value string) (*assistance.Assistance, *assistance.Token, error)
	ListFunc                     func(ctx context.Context, filter assistance.Filter) ([]*assistance.Assistance, int64, error)
	DeleteCascadeFunc            func(ctx context.Context, id uint) error
	FindScheduledBetweenFunc     func(ctx context.Context, from, to time.Time) ([]*assistance.Assistance, error)
	FindScheduledBeforeFunc      func(ctx context.Context, cutoff time.Time) ([]*assistance.Assistance, error)
	FindOpenOlderThanFunc        func(ctx context.Context, openedBefore time.Time, statuses []vo.Status) ([]*assistance.Assistance, error)
	SaveTokenFunc                func(ctx context.Context, t *assistance.Token) error
	UpdateTokenFunc              func(ctx context.Context, t *assistance.Token) error
	SavePhotoFunc                func(ctx context.Context, p *assistance.Photo) error
	FindPhotosByAssistanceIDFunc func(ctx context.Context, assistanceID uint) ([]*assistance.Photo, error)
	CountByStatusFunc            func(ctx context.Context) (map[vo.Status]int64, error)
	CountByAlertLevelFunc        func(ctx context.Context) (map[int]int64, error)
}

func (m *mockAssistanceRepository) Save(ctx context.Context, a *assistance.Assistance) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, a)
	}
	if a.ID() == 0 {
		_ = a.SetID(1)
	}
	return nil
}

func (m *mockAssistanceRepository) Update(ctx context.Context, a *assistance.Assistance) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, a)
	}
	return nil
}

func (m *mockAssistanceRepository) GetByID(ctx context.Context, id uint) (*assistance.Assistance, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, assistance.ErrNotFound
}

func (m *mockAssistanceRepository) GetByTokenValue(ctx context.Context, value string) (*assistance.Assistance, *assistance.Token, error) {
	if m.GetByTokenValueFunc != nil {
		return m.GetByTokenValueFunc(ctx, value)
	}
	return nil, nil, assistance.ErrTokenNotFound
}

func (m *mockAssistanceRepository) List(ctx context.Context, filter assistance.Filter) ([]*assistance.Assistance, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockAssistanceRepository) DeleteCascade(ctx context.Context, id uint) error {
	if m.DeleteCascadeFunc != nil {
		return m.DeleteCascadeFunc(ctx, id)
	}
	return nil
}

func (m *mockAssistanceRepository) FindScheduledBetween(ctx context.Context, from, to time.Time) ([]*assistance.Assistance, error) {
	if m.FindScheduledBetweenFunc != nil {
		return m.FindScheduledBetweenFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *mockAssistanceRepository) FindScheduledBefore(ctx context.Context, cutoff time.Time) ([]*assistance.Assistance, error) {
	if m.FindScheduledBeforeFunc != nil {
		return m.FindScheduledBeforeFunc(ctx, cutoff)
	}
	return nil, nil
}

func (m *mockAssistanceRepository) FindOpenOlderThan(ctx context.Context, openedBefore time.Time, statuses []vo.Status) ([]*assistance.Assistance, error) {
	if m.FindOpenOlderThanFunc != nil {
		return m.FindOpenOlderThanFunc(ctx, openedBefore, statuses)
	}
	return nil, nil
}

func (m *mockAssistanceRepository) SaveToken(ctx context.Context, t *assistance.Token) error {
	if m.SaveTokenFunc != nil {
		return m.SaveTokenFunc(ctx, t)
	}
	return nil
}

func (m *mockAssistanceRepository) UpdateToken(ctx context.Context, t *assistance.Token) error {
	if m.UpdateTokenFunc != nil {
		return m.UpdateTokenFunc(ctx, t)
	}
	return nil
}

func (m *mockAssistanceRepository) SavePhoto(ctx context.Context, p *assistance.Photo) error {
	if m.SavePhotoFunc != nil {
		return m.SavePhotoFunc(ctx, p)
	}
	return nil
}

func (m *mockAssistanceRepository) FindPhotosByAssistanceID(ctx context.Context, assistanceID uint) ([]*assistance.Photo, error) {
	if m.FindPhotosByAssistanceIDFunc != nil {
		return m.FindPhotosByAssistanceIDFunc(ctx, assistanceID)
	}
	return nil, nil
}

func (m *mockAssistanceRepository) CountByStatus(ctx context.Context) (map[vo.Status]int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx)
	}
	return map[vo.Status]int64{}, nil
}

func (m *mockAssistanceRepository) CountByAlertLevel(ctx context.Context) (map[int]int64, error) {
	if m.CountByAlertLevelFunc != nil {
		return m.CountByAlertLevelFunc(ctx)
	}
	return map[int]int64{}, nil
}

type mockActivityLogRepository struct {
	AppendFunc             func(ctx context.Context, entry *assistance.ActivityLogEntry) error
	FindByAssistanceIDFunc func(ctx context.Context, assistanceID uint) ([]*assistance.ActivityLogEntry, error)

	appended []*assistance.ActivityLogEntry
}

func (m *mockActivityLogRepository) Append(ctx context.Context, entry *assistance.ActivityLogEntry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	m.appended = append(m.appended, entry)
	return nil
}

func (m *mockActivityLogRepository) FindByAssistanceID(ctx context.Context, assistanceID uint) ([]*assistance.ActivityLogEntry, error) {
	if m.FindByAssistanceIDFunc != nil {
		return m.FindByAssistanceIDFunc(ctx, assistanceID)
	}
	return m.appended, nil
}

type mockBuildingRepository struct {
	SaveFunc    func(ctx context.Context, b *catalog.Building) error
	UpdateFunc  func(ctx context.Context, b *catalog.Building) error
	GetByIDFunc func(ctx context.Context, id uint) (*catalog.Building, error)
	ListFunc    func(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Building, int64, error)
	DeleteFunc  func(ctx context.Context, id uint) error
}

func (m *mockBuildingRepository) Save(ctx context.Context, b *catalog.Building) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, b)
	}
	return nil
}

func (m *mockBuildingRepository) Update(ctx context.Context, b *catalog.Building) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, b)
	}
	return nil
}

func (m *mockBuildingRepository) GetByID(ctx context.Context, id uint) (*catalog.Building, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return catalog.ReconstructBuilding(id, "Test Building", "Rua A 1", "Admin", true, time.Now(), time.Now()), nil
}

func (m *mockBuildingRepository) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Building, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockBuildingRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockSupplierRepository struct {
	SaveFunc    func(ctx context.Context, s *catalog.Supplier) error
	UpdateFunc  func(ctx context.Context, s *catalog.Supplier) error
	GetByIDFunc func(ctx context.Context, id uint) (*catalog.Supplier, error)
	ListFunc    func(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Supplier, int64, error)
	DeleteFunc  func(ctx context.Context, id uint) error
}

func (m *mockSupplierRepository) Save(ctx context.Context, s *catalog.Supplier) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, s)
	}
	return nil
}

func (m *mockSupplierRepository) Update(ctx context.Context, s *catalog.Supplier) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, s)
	}
	return nil
}

func (m *mockSupplierRepository) GetByID(ctx context.Context, id uint) (*catalog.Supplier, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return catalog.ReconstructSupplier(id, "Test Supplier", "supplier@example.com", "910000000", "plumbing", true, time.Now(), time.Now()), nil
}

func (m *mockSupplierRepository) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Supplier, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockSupplierRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockInterventionTypeRepository struct {
	SaveFunc    func(ctx context.Context, it *catalog.InterventionType) error
	UpdateFunc  func(ctx context.Context, it *catalog.InterventionType) error
	GetByIDFunc func(ctx context.Context, id uint) (*catalog.InterventionType, error)
	ListFunc    func(ctx context.Context, filter catalog.ListFilter) ([]*catalog.InterventionType, int64, error)
	DeleteFunc  func(ctx context.Context, id uint) error
}

func (m *mockInterventionTypeRepository) Save(ctx context.Context, it *catalog.InterventionType) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, it)
	}
	return nil
}

func (m *mockInterventionTypeRepository) Update(ctx context.Context, it *catalog.InterventionType) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, it)
	}
	return nil
}

func (m *mockInterventionTypeRepository) GetByID(ctx context.Context, id uint) (*catalog.InterventionType, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return catalog.ReconstructInterventionType(id, "Plumbing", "", true, time.Now(), time.Now()), nil
}

func (m *mockInterventionTypeRepository) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.InterventionType, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockInterventionTypeRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockTokenGenerator struct {
	GenerateFunc func() (string, error)

	counter int
}

func (m *mockTokenGenerator) Generate() (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.counter++
	return "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcd" + string(rune('a'+m.counter)), nil
}

type mockTransactionManager struct {
	RunInTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTransactionFunc != nil {
		return m.RunInTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockNotifier struct {
	RequestCreatedFunc    func(ctx context.Context, a *assistance.Assistance) error
	RequestAcceptedFunc   func(ctx context.Context, a *assistance.Assistance) error
	RequestRejectedFunc   func(ctx context.Context, a *assistance.Assistance) error
	RequestScheduledFunc  func(ctx context.Context, a *assistance.Assistance, rescheduled bool) error
	RequestCompletedFunc  func(ctx context.Context, a *assistance.Assistance) error
	RequestCancelledFunc  func(ctx context.Context, a *assistance.Assistance) error
	RequestReassignedFunc func(ctx context.Context, a *assistance.Assistance) error
	SameDayReminderFunc   func(ctx context.Context, a *assistance.Assistance) error
	FollowUpReminderFunc  func(ctx context.Context, a *assistance.Assistance) error
	EscalationAlertFunc   func(ctx context.Context, a *assistance.Assistance, level int) error

	sent []string
}

func (m *mockNotifier) RequestCreated(ctx context.Context, a *assistance.Assistance) error {
	if m.RequestCreatedFunc != nil {
		return m.RequestCreatedFunc(ctx, a)
	}
	m.sent = append(m.sent, "created")
	return nil
}

func (m *mockNotifier) RequestAccepted(ctx context.Context, a *assistance.Assistance) error {
	if m.RequestAcceptedFunc != nil {
		return m.RequestAcceptedFunc(ctx, a)
	}
	m.sent = append(m.sent, "accepted")
	return nil
}

func (m *mockNotifier) RequestRejected(ctx context.Context, a *assistance.Assistance) error {
	if m.RequestRejectedFunc != nil {
		return m.RequestRejectedFunc(ctx, a)
	}
	m.sent = append(m.sent, "rejected")
	return nil
}

func (m *mockNotifier) RequestScheduled(ctx context.Context, a *assistance.Assistance, rescheduled bool) error {
	if m.RequestScheduledFunc != nil {
		return m.RequestScheduledFunc(ctx, a, rescheduled)
	}
	if rescheduled {
		m.sent = append(m.sent, "rescheduled")
	} else {
		m.sent = append(m.sent, "scheduled")
	}
	return nil
}

func (m *mockNotifier) RequestCompleted(ctx context.Context, a *assistance.Assistance) error {
	if m.RequestCompletedFunc != nil {
		return m.RequestCompletedFunc(ctx, a)
	}
	m.sent = append(m.sent, "completed")
	return nil
}

func (m *mockNotifier) RequestCancelled(ctx context.Context, a *assistance.Assistance) error {
	if m.RequestCancelledFunc != nil {
		return m.RequestCancelledFunc(ctx, a)
	}
	m.sent = append(m.sent, "cancelled")
	return nil
}

func (m *mockNotifier) RequestReassigned(ctx context.Context, a *assistance.Assistance) error {
	if m.RequestReassignedFunc != nil {
		return m.RequestReassignedFunc(ctx, a)
	}
	m.sent = append(m.sent, "reassigned")
	return nil
}

func (m *mockNotifier) SameDayReminder(ctx context.Context, a *assistance.Assistance) error {
	if m.SameDayReminderFunc != nil {
		return m.SameDayReminderFunc(ctx, a)
	}
	m.sent = append(m.sent, "same_day_reminder")
	return nil
}

func (m *mockNotifier) FollowUpReminder(ctx context.Context, a *assistance.Assistance) error {
	if m.FollowUpReminderFunc != nil {
		return m.FollowUpReminderFunc(ctx, a)
	}
	m.sent = append(m.sent, "follow_up_reminder")
	return nil
}

func (m *mockNotifier) EscalationAlert(ctx context.Context, a *assistance.Assistance, level int) error {
	if m.EscalationAlertFunc != nil {
		return m.EscalationAlertFunc(ctx, a, level)
	}
	m.sent = append(m.sent, "escalation_alert")
	return nil
}

type mockPhotoStorage struct {
	StoreFunc func(ctx context.Context, assistanceID uint, filename string, data []byte) (*StoredPhoto, error)
}

func (m *mockPhotoStorage) Store(ctx context.Context, assistanceID uint, filename string, data []byte) (*StoredPhoto, error) {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, assistanceID, filename, data)
	}
	return &StoredPhoto{
		Path:        "photos/1/" + filename,
		ContentType: "image/jpeg",
		SizeBytes:   int64(len(data)),
	}, nil
}

type mockLogger struct {
	InfowFunc  func(msg string, keysAndValues ...interface{})
	ErrorwFunc func(msg string, keysAndValues ...interface{})
	WarnwFunc  func(msg string, keysAndValues ...interface{})
	DebugwFunc func(msg string, keysAndValues ...interface{})
}

func (m *mockLogger) Debug(msg string, args ...any) {}
func (m *mockLogger) Info(msg string, args ...any)  {}
func (m *mockLogger) Warn(msg string, args ...any)  {}
func (m *mockLogger) Error(msg string, args ...any) {}
func (m *mockLogger) Fatal(msg string, args ...any) {}

func (m *mockLogger) With(args ...any) logger.Interface  { return m }
func (m *mockLogger) Named(name string) logger.Interface { return m }

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {
	if m.DebugwFunc != nil {
		m.DebugwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}
