package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"petpals/internal/domain/reunions"
)

type sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// Notifier manda los avisos de pedidos de reencuentro por SendGrid.
type Notifier struct {
	client    sender
	fromEmail string
	fromName  string
}

func NewNotifier(apiKey, fromEmail, fromName string) *Notifier {
	return &Notifier{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (n *Notifier) RequestOpened(ctx context.Context, notice reunions.Notice) error {
	return n.send(ctx, requestOpenedMessage(n.from(), notice))
}

func (n *Notifier) RequestResolved(ctx context.Context, notice reunions.Notice) error {
	return n.send(ctx, requestResolvedMessage(n.from(), notice))
}

func (n *Notifier) from() *mail.Email {
	return mail.NewEmail(n.fromName, n.fromEmail)
}

func (n *Notifier) send(ctx context.Context, msg *mail.SGMailV3) error {
	resp, err := n.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func requestOpenedMessage(from *mail.Email, n reunions.Notice) *mail.SGMailV3 {
	pet := petLabel(n.PetName)
	finder := n.Request.FinderName
	if strings.TrimSpace(finder) == "" {
		finder = "Someone"
	}

	subject := fmt.Sprintf("Good news: %s may have been found", pet)

	var b strings.Builder
	fmt.Fprintf(&b, "%s reported finding %s.\n", finder, pet)
	if n.Request.FoundLocation != "" {
		fmt.Fprintf(&b, "Found at: %s\n", n.Request.FoundLocation)
	}
	if n.Request.CurrentLocation != "" {
		fmt.Fprintf(&b, "Currently at: %s\n", n.Request.CurrentLocation)
	}
	if n.Request.FinderPhone != "" {
		fmt.Fprintf(&b, "Finder phone: %s\n", n.Request.FinderPhone)
	}
	fmt.Fprintf(&b, "Message: %s\n", n.Request.Message)
	fmt.Fprintf(&b, "Review reunion request %s to approve or reject it.\n", n.Request.ID)
	plain := b.String()

	return mail.NewSingleEmail(from, subject, mail.NewEmail(n.ToName, n.ToEmail), plain, toHTML(subject, plain))
}

func requestResolvedMessage(from *mail.Email, n reunions.Notice) *mail.SGMailV3 {
	pet := petLabel(n.PetName)

	var subject, plain string
	switch n.Request.Status {
	case reunions.StatusApproved:
		subject = fmt.Sprintf("Your reunion request for %s was approved", pet)
		plain = fmt.Sprintf("The owner approved your request. %s is now marked as reunited. Thank you for helping!\n", pet)
	default:
		subject = fmt.Sprintf("Your reunion request for %s was not approved", pet)
		plain = "The owner rejected your request.\n"
		if n.Request.ResolutionNote != "" {
			plain += fmt.Sprintf("Note: %s\n", n.Request.ResolutionNote)
		}
	}

	return mail.NewSingleEmail(from, subject, mail.NewEmail(n.ToName, n.ToEmail), plain, toHTML(subject, plain))
}

func petLabel(name string) string {
	if strings.TrimSpace(name) == "" {
		return "your pet"
	}
	return strings.TrimSpace(name)
}

func toHTML(title, plain string) string {
	var b strings.Builder
	b.WriteString("<html><body><h2>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</h2>")
	for _, line := range strings.Split(strings.TrimSpace(plain), "\n") {
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</p>")
	}
	b.WriteString("</body></html>")
	return b.String()
}
