// Package notification turns assistance lifecycle events into outbound
// emails. Sends are at-most-once best-effort: every attempt lands in the
// email log, and a failed send never rolls back the state change that
// triggered it.
package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"zelador/internal/domain/admin"
	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/domain/catalog"
	"zelador/internal/shared/logger"
)

// Message is one outbound email. Bodies are authored in markdown; the mailer
// renders them to HTML before handing off to SMTP.
type Message struct {
	To       []string
	Subject  string
	Markdown string
}

// Mailer is the delivery boundary.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Template names recorded in the email log.
const (
	templateRequestCreated     = "request_created"
	templateRequestAccepted    = "request_accepted"
	templateSchedulingInvite   = "scheduling_invite"
	templateRequestRejected    = "request_rejected"
	templateRequestScheduled   = "request_scheduled"
	templateRequestRescheduled = "request_rescheduled"
	templateRequestCompleted   = "request_completed"
	templateRequestCancelled   = "request_cancelled"
	templateRequestReassigned  = "request_reassigned"
	templateSameDayReminder    = "same_day_reminder"
	templateFollowUpReminder   = "follow_up_reminder"
	templateEscalationAlert    = "escalation_alert"
)

const dateTimeLayout = "02/01/2006 15:04"

// Service implements the lifecycle notifier. Supplier-facing emails carry a
// capability link built from the ticket's active tokens; admin-facing emails
// go to every registered administrator.
type Service struct {
	mailer    Mailer
	suppliers catalog.SupplierRepository
	buildings catalog.BuildingRepository
	admins    admin.Repository
	emailLog  assistance.EmailLogRepository
	baseURL   string
	// fallbackAdmins is used when no admin accounts exist yet, e.g. before
	// the first user is seeded.
	fallbackAdmins []string
	sanitizer      *bluemonday.Policy
	logger         logger.Interface
}

func NewService(
	mailer Mailer,
	suppliers catalog.SupplierRepository,
	buildings catalog.BuildingRepository,
	admins admin.Repository,
	emailLog assistance.EmailLogRepository,
	baseURL string,
	fallbackAdmins []string,
	log logger.Interface,
) *Service {
	return &Service{
		mailer:         mailer,
		suppliers:      suppliers,
		buildings:      buildings,
		admins:         admins,
		emailLog:       emailLog,
		baseURL:        strings.TrimRight(baseURL, "/"),
		fallbackAdmins: fallbackAdmins,
		sanitizer:      bluemonday.StrictPolicy(),
		logger:         log.Named("notification"),
	}
}

func (s *Service) RequestCreated(ctx context.Context, a *assistance.Assistance) error {
	to, err := s.supplierRecipient(ctx, a)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Novo pedido de assistência\n\n")
	s.writeRequestSummary(ctx, &b, a)
	fmt.Fprintf(&b, "\nPor favor aceite ou recuse o pedido através das ligações abaixo.\n")
	s.writeActionLink(&b, a, vo.ActionView, "Abrir o pedido")
	s.writeActionLink(&b, a, vo.ActionAccept, "Aceitar ou recusar")

	subject := fmt.Sprintf("Novo pedido de assistência — %s", s.buildingName(ctx, a))
	return s.dispatch(ctx, a, templateRequestCreated, to, subject, b.String())
}

func (s *Service) RequestAccepted(ctx context.Context, a *assistance.Assistance) error {
	// The supplier confirmation carries the scheduling link issued on
	// acceptance; the admin copy is informational only. Both attempts land
	// in the email log, and neither failure suppresses the other send.
	var supplierErr error
	if to, err := s.supplierRecipient(ctx, a); err != nil {
		supplierErr = err
	} else {
		var b strings.Builder
		fmt.Fprintf(&b, "# Pedido aceite\n\n")
		s.writeRequestSummary(ctx, &b, a)
		fmt.Fprintf(&b, "\nObrigado por aceitar o pedido. Proponha uma data de intervenção através da ligação abaixo.\n")
		s.writeActionLink(&b, a, vo.ActionSchedule, "Agendar a intervenção")

		subject := fmt.Sprintf("Pedido #%d aceite — agende a intervenção", a.ID())
		supplierErr = s.dispatch(ctx, a, templateSchedulingInvite, to, subject, b.String())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Pedido aceite pelo fornecedor\n\n")
	s.writeRequestSummary(ctx, &b, a)
	fmt.Fprintf(&b, "\nO fornecedor aceitou o pedido e irá propor uma data de intervenção.\n")

	subject := fmt.Sprintf("Pedido #%d aceite — %s", a.ID(), s.buildingName(ctx, a))
	adminErr := s.dispatch(ctx, a, templateRequestAccepted, s.adminRecipients(ctx), subject, b.String())

	if supplierErr != nil {
		return supplierErr
	}
	return adminErr
}

func (s *Service) RequestRejected(ctx context.Context, a *assistance.Assistance) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Pedido recusado pelo fornecedor\n\n")
	s.writeRequestSummary(ctx, &b, a)
	if reason := a.RejectionReason(); reason != "" {
		fmt.Fprintf(&b, "\n**Motivo:** %s\n", s.sanitize(reason))
	}
	fmt.Fprintf(&b, "\nO pedido pode ser reatribuído a outro fornecedor no painel de administração.\n")

	subject := fmt.Sprintf("Pedido #%d recusado — %s", a.ID(), s.buildingName(ctx, a))
	return s.dispatch(ctx, a, templateRequestRejected, s.adminRecipients(ctx), subject, b.String())
}

func (s *Service) RequestScheduled(ctx context.Context, a *assistance.Assistance, rescheduled bool) error {
	template := templateRequestScheduled
	heading := "Intervenção agendada"
	if rescheduled {
		template = templateRequestRescheduled
		heading = "Intervenção reagendada"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", heading)
	s.writeRequestSummary(ctx, &b, a)
	if rescheduled {
		if reason := a.RescheduleReason(); reason != "" {
			fmt.Fprintf(&b, "\n**Motivo do reagendamento:** %s\n", s.sanitize(reason))
		}
	}

	subject := fmt.Sprintf("%s — pedido #%d, %s", heading, a.ID(), s.buildingName(ctx, a))
	return s.dispatch(ctx, a, template, s.adminRecipients(ctx), subject, b.String())
}

func (s *Service) RequestCompleted(ctx context.Context, a *assistance.Assistance) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Trabalho concluído\n\n")
	s.writeRequestSummary(ctx, &b, a)
	fmt.Fprintf(&b, "\nO fornecedor registou a conclusão do trabalho com evidência fotográfica.\n")

	subject := fmt.Sprintf("Pedido #%d concluído — %s", a.ID(), s.buildingName(ctx, a))
	return s.dispatch(ctx, a, templateRequestCompleted, s.adminRecipients(ctx), subject, b.String())
}

func (s *Service) RequestCancelled(ctx context.Context, a *assistance.Assistance) error {
	to, err := s.supplierRecipient(ctx, a)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Pedido de assistência cancelado\n\n")
	s.writeRequestSummary(ctx, &b, a)
	fmt.Fprintf(&b, "\nO pedido foi cancelado pela administração. Não é necessária qualquer ação.\n")

	subject := fmt.Sprintf("Pedido #%d cancelado — %s", a.ID(), s.buildingName(ctx, a))
	return s.dispatch(ctx, a, templateRequestCancelled, to, subject, b.String())
}

func (s *Service) RequestReassigned(ctx context.Context, a *assistance.Assistance) error {
	to, err := s.supplierRecipient(ctx, a)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Novo pedido de assistência\n\n")
	s.writeRequestSummary(ctx, &b, a)
	fmt.Fprintf(&b, "\nPor favor aceite ou recuse o pedido através das ligações abaixo.\n")
	s.writeActionLink(&b, a, vo.ActionView, "Abrir o pedido")
	s.writeActionLink(&b, a, vo.ActionAccept, "Aceitar ou recusar")

	subject := fmt.Sprintf("Novo pedido de assistência — %s", s.buildingName(ctx, a))
	return s.dispatch(ctx, a, templateRequestReassigned, to, subject, b.String())
}

func (s *Service) SameDayReminder(ctx context.Context, a *assistance.Assistance) error {
	to, err := s.supplierRecipient(ctx, a)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Lembrete: intervenção agendada para hoje\n\n")
	s.writeRequestSummary(ctx, &b, a)
	fmt.Fprintf(&b, "\nApós concluir o trabalho, registe a conclusão com fotografias através da ligação abaixo.\n")
	s.writeActionLink(&b, a, vo.ActionComplete, "Registar conclusão")

	subject := fmt.Sprintf("Lembrete: intervenção hoje — %s", s.buildingName(ctx, a))
	return s.dispatch(ctx, a, templateSameDayReminder, to, subject, b.String())
}

func (s *Service) FollowUpReminder(ctx context.Context, a *assistance.Assistance) error {
	to, err := s.supplierRecipient(ctx, a)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# A intervenção agendada já passou\n\n")
	s.writeRequestSummary(ctx, &b, a)
	fmt.Fprintf(&b, "\nAinda não recebemos o registo de conclusão. Conclua o trabalho ou proponha uma nova data.\n")
	s.writeActionLink(&b, a, vo.ActionComplete, "Registar conclusão")
	s.writeActionLink(&b, a, vo.ActionSchedule, "Propor nova data")

	subject := fmt.Sprintf("Pedido #%d por concluir — %s", a.ID(), s.buildingName(ctx, a))
	return s.dispatch(ctx, a, templateFollowUpReminder, to, subject, b.String())
}

func (s *Service) EscalationAlert(ctx context.Context, a *assistance.Assistance, level int) error {
	var b strings.Builder
	if level >= assistance.MaxAlertLevel {
		fmt.Fprintf(&b, "# Alerta crítico: pedido sem resolução\n\n")
	} else {
		fmt.Fprintf(&b, "# Pedido de assistência em atraso\n\n")
	}
	s.writeRequestSummary(ctx, &b, a)
	fmt.Fprintf(&b, "\n**Nível de alerta:** %d\n", level)
	fmt.Fprintf(&b, "**Aberto em:** %s\n", a.OpenedAt().Format(dateTimeLayout))
	if level >= assistance.MaxAlertLevel {
		fmt.Fprintf(&b, "\nEste pedido atingiu o nível máximo de alerta e requer intervenção imediata.\n")
	}

	subject := fmt.Sprintf("Alerta nível %d — pedido #%d, %s", level, a.ID(), s.buildingName(ctx, a))
	return s.dispatch(ctx, a, templateEscalationAlert, s.adminRecipients(ctx), subject, b.String())
}

// dispatch sends the message and records the attempt. The log write is
// itself best-effort: a logging failure is reported but does not mask the
// send outcome.
func (s *Service) dispatch(ctx context.Context, a *assistance.Assistance, template string, to []string, subject, markdown string) error {
	if len(to) == 0 {
		s.logger.Warnw("no recipients for notification, skipping",
			"assistance_id", a.ID(),
			"template", template,
		)
		return nil
	}

	sendErr := s.mailer.Send(ctx, Message{To: to, Subject: subject, Markdown: markdown})

	errorDetail := ""
	if sendErr != nil {
		errorDetail = sendErr.Error()
	}
	entry, err := assistance.NewEmailLogEntry(a.ID(), template, to, sendErr == nil, errorDetail, time.Now())
	if err == nil {
		err = s.emailLog.Append(ctx, entry)
	}
	if err != nil {
		s.logger.Errorw("failed to record email log entry",
			"assistance_id", a.ID(),
			"template", template,
			"error", err,
		)
	}

	if sendErr != nil {
		return fmt.Errorf("send %s email: %w", template, sendErr)
	}
	return nil
}

func (s *Service) supplierRecipient(ctx context.Context, a *assistance.Assistance) ([]string, error) {
	supplier, err := s.suppliers.GetByID(ctx, a.SupplierID())
	if err != nil {
		return nil, fmt.Errorf("load supplier %d: %w", a.SupplierID(), err)
	}
	return []string{supplier.Email()}, nil
}

func (s *Service) adminRecipients(ctx context.Context) []string {
	emails, err := s.admins.ListEmails(ctx)
	if err != nil {
		s.logger.Errorw("failed to list admin emails, using configured fallback", "error", err)
		return s.fallbackAdmins
	}
	if len(emails) == 0 {
		return s.fallbackAdmins
	}
	return emails
}

func (s *Service) buildingName(ctx context.Context, a *assistance.Assistance) string {
	building, err := s.buildings.GetByID(ctx, a.BuildingID())
	if err != nil {
		s.logger.Warnw("failed to load building for notification",
			"building_id", a.BuildingID(),
			"error", err,
		)
		return fmt.Sprintf("edifício #%d", a.BuildingID())
	}
	return building.Name()
}

// writeRequestSummary appends the shared header block. User-supplied text is
// sanitized before it is embedded in the markdown.
func (s *Service) writeRequestSummary(ctx context.Context, b *strings.Builder, a *assistance.Assistance) {
	fmt.Fprintf(b, "**Edifício:** %s\n", s.buildingName(ctx, a))
	fmt.Fprintf(b, "**Urgência:** %s\n", a.Urgency().String())
	fmt.Fprintf(b, "**Descrição:** %s\n", s.sanitize(a.Description()))
	if scheduledAt := a.ScheduledAt(); scheduledAt != nil {
		fmt.Fprintf(b, "**Data agendada:** %s\n", scheduledAt.Format(dateTimeLayout))
	}
}

// writeActionLink appends a capability link for the given action, built from
// the token whose purpose governs that action. Non-view actions carry an
// explicit action query so the landing page resolves against the right
// purpose straight away.
func (s *Service) writeActionLink(b *strings.Builder, a *assistance.Assistance, action vo.TokenAction, label string) {
	token := a.TokenFor(action.Purpose())
	if token == nil {
		// Should not happen: callers issue the token before notifying.
		s.logger.Warnw("no active token for notification link",
			"assistance_id", a.ID(),
			"purpose", action.Purpose().String(),
		)
		return
	}
	if action == vo.ActionView {
		fmt.Fprintf(b, "\n[%s](%s/t/%s)\n", label, s.baseURL, token.Value())
		return
	}
	fmt.Fprintf(b, "\n[%s](%s/t/%s?action=%s)\n", label, s.baseURL, token.Value(), action.String())
}

func (s *Service) sanitize(text string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(text))
}
