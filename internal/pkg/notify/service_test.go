package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*Email
	err  error
}

func (f *fakeSender) Send(email *Email) (*Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, email)
	return &Result{ID: "email_abc"}, nil
}

func TestServiceSendReportEmailDefaultsRecipient(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(sender, "", "")

	receipt, err := svc.SendReportEmail("BM123ABC", sampleSnapshot(), "")
	require.NoError(t, err)

	assert.Equal(t, "email_abc", receipt.EmailID)
	assert.Equal(t, "BM123ABC", receipt.ReportID)
	assert.Equal(t, DefaultGovEmail, receipt.SentTo)
	assert.False(t, receipt.Timestamp.IsZero())

	require.Len(t, sender.sent, 1)
	assert.Equal(t, DefaultFrom, sender.sent[0].From)
	assert.Equal(t, []string{DefaultGovEmail}, sender.sent[0].To)
}

func TestServiceSendReportEmailExplicitRecipient(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(sender, "reports@urbanwatch.example", "fallback@gov.example")

	receipt, err := svc.SendReportEmail("BM555QRS", sampleSnapshot(), "inspector@city.example")
	require.NoError(t, err)

	assert.Equal(t, "inspector@city.example", receipt.SentTo)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "reports@urbanwatch.example", sender.sent[0].From)
}

func TestServiceSendReportEmailProviderFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("provider down")}
	svc := NewService(sender, "", "")

	receipt, err := svc.SendReportEmail("BM123ABC", sampleSnapshot(), "")
	require.Error(t, err)
	assert.Nil(t, receipt)
	assert.Contains(t, err.Error(), "provider down")
}
