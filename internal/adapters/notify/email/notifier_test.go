package email

import (
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petpals/internal/domain/reunions"
)

type fakeSender struct {
	sent []*mail.SGMailV3
	resp *rest.Response
	err  error
}

func (f *fakeSender) SendWithContext(_ context.Context, m *mail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, m)
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &rest.Response{StatusCode: 202}, nil
}

func newTestNotifier(s *fakeSender) *Notifier {
	return &Notifier{client: s, fromEmail: "noreply@petpals.test", fromName: "PetPals"}
}

func TestRequestOpened_BuildsOwnerMessage(t *testing.T) {
	s := &fakeSender{}
	n := newTestNotifier(s)

	err := n.RequestOpened(context.Background(), reunions.Notice{
		Request: reunions.Request{
			ID:            "req-1",
			FinderName:    "Bob",
			FoundLocation: "Park",
			Message:       "Pet found by Bob",
		},
		PetName: "Rex",
		ToEmail: "ana@example.com",
		ToName:  "Ana",
	})
	require.NoError(t, err)
	require.Len(t, s.sent, 1)

	m := s.sent[0]
	assert.Equal(t, "Good news: Rex may have been found", m.Subject)
	assert.Equal(t, "noreply@petpals.test", m.From.Address)
	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "ana@example.com", m.Personalizations[0].To[0].Address)

	require.Len(t, m.Content, 2)
	assert.Contains(t, m.Content[0].Value, "Bob reported finding Rex.")
	assert.Contains(t, m.Content[0].Value, "Found at: Park")
	assert.Contains(t, m.Content[0].Value, "req-1")
}

func TestRequestResolved_Subjects(t *testing.T) {
	from := mail.NewEmail("PetPals", "noreply@petpals.test")

	approved := requestResolvedMessage(from, reunions.Notice{
		Request: reunions.Request{Status: reunions.StatusApproved},
		PetName: "Rex",
		ToEmail: "bob@example.com",
	})
	assert.Equal(t, "Your reunion request for Rex was approved", approved.Subject)

	rejected := requestResolvedMessage(from, reunions.Notice{
		Request: reunions.Request{Status: reunions.StatusRejected, ResolutionNote: "not my dog"},
		ToEmail: "bob@example.com",
	})
	assert.Equal(t, "Your reunion request for your pet was not approved", rejected.Subject)
	assert.Contains(t, rejected.Content[0].Value, "Note: not my dog")
}

func TestSend_ErrorStatus(t *testing.T) {
	s := &fakeSender{resp: &rest.Response{StatusCode: 401, Body: "unauthorized"}}
	err := newTestNotifier(s).RequestResolved(context.Background(), reunions.Notice{ToEmail: "x@example.com"})
	assert.ErrorContains(t, err, "status 401")
}

func TestSend_TransportError(t *testing.T) {
	s := &fakeSender{err: errors.New("dial tcp: timeout")}
	err := newTestNotifier(s).RequestOpened(context.Background(), reunions.Notice{ToEmail: "x@example.com"})
	assert.ErrorContains(t, err, "failed to send email")
}

func TestToHTML_Escapes(t *testing.T) {
	out := toHTML("Hi", "<b>Rex</b>")
	assert.Contains(t, out, "&lt;b&gt;Rex&lt;/b&gt;")
}
