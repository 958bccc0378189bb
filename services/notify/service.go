// Package notify composes and routes the report emails: leadership
// reports to the bishopric and renewal notices to the members
// themselves.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"wardreport/lib/mdtable"
	"wardreport/services/membership"
	"wardreport/services/recommend"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/notify")

// MessageConfig routes one leadership email: a lead-in message plus
// the names of the report groups to include, in order.
type MessageConfig struct {
	Subject string   `json:"subject"`
	Message string   `json:"message"`
	Reports []string `json:"reports"`
}

// MemberConfig routes the member notices: the notice body (with
// {bishop}, {counselor1}, {counselor2} placeholders) and the month
// window of expirations that trigger a notice.
type MemberConfig struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
	Head    int    `json:"head"`
	Tail    int    `json:"tail"`
}

type Config struct {
	FromAddr string `json:"from_addr"`
	// optional audit copy on every outgoing message
	BccAddr string `json:"bcc_addr"`
	// when set, every message is delivered only to this address
	TestAddr string `json:"test_addr"`

	Bishop    MessageConfig `json:"bishop"`
	Counselor MessageConfig `json:"counselor"`
	Member    MemberConfig  `json:"member"`
}

type Service struct {
	cfg    Config
	sender Sender
}

func NewService(cfg Config, sender Sender) Service {
	return Service{cfg: cfg, sender: sender}
}

// SpokenName turns the portal's "Surname, Given" into "Given Surname".
func SpokenName(preferred string) string {
	parts := strings.Split(preferred, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " ")
}

func (s Service) compose(subject string, to, cc, bcc []string, body string) (*email.Email, error) {
	msg := email.NewEmail()
	msg.From = s.cfg.FromAddr
	msg.Subject = subject
	msg.Text = []byte(body)

	html, err := RenderHTML(body)
	if err != nil {
		return nil, err
	}
	msg.HTML = html

	if s.cfg.TestAddr != "" {
		msg.To = []string{s.cfg.TestAddr}
		return msg, nil
	}
	msg.To = to
	msg.Cc = cc
	msg.Bcc = bcc
	if s.cfg.BccAddr != "" {
		msg.Bcc = append(msg.Bcc, s.cfg.BccAddr)
	}
	return msg, nil
}

// assembles the lead-in message plus each requested report under its
// window title
func buildLeadershipBody(cfg MessageConfig, windows map[string]recommend.Window, reports map[string]string) (string, error) {
	var text []string
	if cfg.Message != "" {
		text = append(text, cfg.Message, "")
	}
	for _, name := range cfg.Reports {
		report, ok := reports[name]
		if !ok {
			return "", fmt.Errorf("message references unknown report group %q", name)
		}
		w := windows[name]
		text = append(text, mdtable.Heading(w.Title), report)
	}
	return strings.Join(text, "\n"), nil
}

// SendBishopReport emails the bishop their configured report set.
// A message with no configured reports is skipped, loudly.
func (s Service) SendBishopReport(ctx context.Context, bishopric map[string]membership.RoleHolder, windows map[string]recommend.Window, reports map[string]string) error {
	ctx, span := tracer.Start(ctx, "SendBishopReport")
	defer span.End()

	if len(s.cfg.Bishop.Reports) == 0 {
		slog.InfoContext(ctx, "no bishop reports configured, skipping bishop email")
		return nil
	}

	body, err := buildLeadershipBody(s.cfg.Bishop, windows, reports)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	bishop, ok := bishopric[membership.RoleBishop]
	if !ok {
		err := fmt.Errorf("no bishop resolved for this unit")
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	msg, err := s.compose(s.cfg.Bishop.Subject, []string{bishop.Email()}, nil, nil, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to compose bishop email")
		return err
	}
	err = s.sender.Send(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send bishop email")
		return err
	}
	return nil
}

// SendCounselorReport emails both counselors their configured report
// set, with the bishop on Cc.
func (s Service) SendCounselorReport(ctx context.Context, bishopric map[string]membership.RoleHolder, windows map[string]recommend.Window, reports map[string]string) error {
	ctx, span := tracer.Start(ctx, "SendCounselorReport")
	defer span.End()

	if len(s.cfg.Counselor.Reports) == 0 {
		slog.InfoContext(ctx, "no counselor reports configured, skipping counselor email")
		return nil
	}

	body, err := buildLeadershipBody(s.cfg.Counselor, windows, reports)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	var to []string
	for _, role := range []string{membership.RoleCounselor1, membership.RoleCounselor2} {
		holder, ok := bishopric[role]
		if !ok {
			err := fmt.Errorf("no %s resolved for this unit", role)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		to = append(to, holder.Email())
	}
	var cc []string
	if bishop, ok := bishopric[membership.RoleBishop]; ok {
		cc = append(cc, bishop.Email())
	}

	msg, err := s.compose(s.cfg.Counselor.Subject, to, cc, nil, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to compose counselor email")
		return err
	}
	err = s.sender.Send(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send counselor email")
		return err
	}
	return nil
}

func (s Service) memberBody(bishopric map[string]membership.RoleHolder) string {
	replacements := []string{}
	for _, role := range []string{
		membership.RoleBishop,
		membership.RoleCounselor1,
		membership.RoleCounselor2,
	} {
		if holder, ok := bishopric[role]; ok {
			replacements = append(
				replacements,
				"{"+role+"}",
				SpokenName(holder.PreferredName),
			)
		}
	}
	return strings.NewReplacer(replacements...).Replace(s.cfg.Member.Message)
}

// SendMemberNotices emails every member inside the configured window a
// renewal notice, Bcc'd so no member sees another's address, then
// sends an audit message back to the sender listing who was notified
// and who had no usable email address.
func (s Service) SendMemberNotices(ctx context.Context, bishopric map[string]membership.RoleHolder, records []recommend.Record, window recommend.Window) error {
	ctx, span := tracer.Start(ctx, "SendMemberNotices")
	defer span.End()

	body := s.memberBody(bishopric)

	seen := map[string]bool{}
	var bcc []string
	audit := []string{"Looking for members to notify."}
	for _, r := range records {
		month := r.ExpireMonth()
		if month < window.Start || month > window.End {
			continue
		}
		addr := r.Email()
		if addr == "" {
			slog.WarnContext(ctx, "member has no email address", "name", r.Name)
			audit = append(audit, fmt.Sprintf("%s missing email.", r.Name))
			continue
		}
		audit = append(audit, fmt.Sprintf("%s %s", r.Name, addr))
		if !seen[addr] {
			seen[addr] = true
			bcc = append(bcc, addr)
		}
	}
	span.SetAttributes(attribute.Int("notified", len(bcc)))

	if len(bcc) > 0 {
		msg, err := s.compose(s.cfg.Member.Subject, []string{"undisclosed-recipients:;"}, nil, bcc, body)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to compose member notice")
			return err
		}
		err = s.sender.Send(msg)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to send member notice")
			return err
		}
	} else {
		slog.InfoContext(ctx, "no members to notify in window", "start", window.Start, "end", window.End)
	}

	audit = append(audit, "", "Member emails sent to:")
	audit = append(audit, bcc...)
	auditMsg := email.NewEmail()
	auditMsg.From = s.cfg.FromAddr
	auditMsg.To = []string{s.cfg.FromAddr}
	auditMsg.Subject = "Temple recommend - member emails"
	auditMsg.Text = []byte(strings.Join(audit, "\r\n"))
	err := s.sender.Send(auditMsg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send audit email")
		return err
	}
	return nil
}
