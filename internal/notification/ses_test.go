package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSESClient struct {
	input *ses.SendEmailInput
	calls int
	err   error
}

func (m *mockSESClient) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls++
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESSender_Send(t *testing.T) {
	client := &mockSESClient{}
	sender := NewSESSender(client)

	err := sender.Send(context.Background(), testMessage())

	require.NoError(t, err)
	require.Equal(t, 1, client.calls)
	in := client.input
	assert.Equal(t, "site@advisor.test", aws.ToString(in.Source))
	assert.Equal(t, []string{"inbox@advisor.test"}, in.Destination.ToAddresses)
	assert.Equal(t, []string{"ana@x.io"}, in.ReplyToAddresses)
	assert.Equal(t, "Contact Inquiry: Ana", aws.ToString(in.Message.Subject.Data))
	assert.Equal(t, "Name: Ana", aws.ToString(in.Message.Body.Text.Data))
	assert.Nil(t, in.Message.Body.Html)
}

func TestSESSender_NoReplyTo(t *testing.T) {
	client := &mockSESClient{}
	msg := testMessage()
	msg.ReplyTo = ""

	require.NoError(t, NewSESSender(client).Send(context.Background(), msg))
	assert.Empty(t, client.input.ReplyToAddresses)
}

func TestSESSender_Error(t *testing.T) {
	cause := errors.New("MessageRejected: Email address is not verified")
	sender := NewSESSender(&mockSESClient{err: cause})

	err := sender.Send(context.Background(), testMessage())

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "ses", sender.Name())
}
