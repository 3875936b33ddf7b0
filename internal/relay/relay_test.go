package relay

import (
	"errors"
	"io"
	"net/smtp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiinoda/mailout/internal/creds"
	"github.com/kiinoda/mailout/internal/errkind"
	"github.com/kiinoda/mailout/internal/message"
)

// mockSession implements Session and records which phases were driven.
type mockSession struct {
	failOn string // phase to fail: "auth", "mail", "rcpt", "data", "write", "close", "quit"
	calls  map[string]int
	data   *mockWriteCloser
}

type mockWriteCloser struct {
	failWrite bool
	failClose bool
	written   []byte
}

func (m *mockWriteCloser) Write(p []byte) (int, error) {
	if m.failWrite {
		return 0, errors.New("mock write error")
	}
	m.written = append(m.written, p...)
	return len(p), nil
}

func (m *mockWriteCloser) Close() error {
	if m.failClose {
		return errors.New("mock close error")
	}
	return nil
}

func newMockSession() *mockSession {
	return &mockSession{calls: map[string]int{}, data: &mockWriteCloser{}}
}

func (m *mockSession) Auth(a smtp.Auth) error {
	m.calls["Auth"]++
	if m.failOn == "auth" {
		return errors.New("mock auth error")
	}
	return nil
}

func (m *mockSession) Mail(from string) error {
	m.calls["Mail"]++
	if m.failOn == "mail" {
		return errors.New("mock mail error")
	}
	return nil
}

func (m *mockSession) Rcpt(to string) error {
	m.calls["Rcpt"]++
	if m.failOn == "rcpt" {
		return errors.New("mock rcpt error")
	}
	return nil
}

func (m *mockSession) Data() (io.WriteCloser, error) {
	m.calls["Data"]++
	if m.failOn == "data" {
		return nil, errors.New("mock data error")
	}
	m.data.failWrite = m.failOn == "write"
	m.data.failClose = m.failOn == "close"
	return m.data, nil
}

func (m *mockSession) Quit() error {
	m.calls["Quit"]++
	if m.failOn == "quit" {
		return errors.New("mock quit error")
	}
	return nil
}

func (m *mockSession) Close() error {
	m.calls["Close"]++
	return nil
}

func testTransport(sess *mockSession, dialErr error, cred *creds.Credential) *Transport {
	t := New("smtp.example.com", 587, false, cred, zerolog.Nop())
	t.dial = func(server string, port int, useSSL bool) (Session, error) {
		if dialErr != nil {
			return nil, dialErr
		}
		return sess, nil
	}
	return t
}

func testMessage(t *testing.T) *message.Message {
	t.Helper()
	msg, err := message.Build("sender@example.com", "rcpt@example.com", "Test", "hello", zerolog.Nop())
	require.NoError(t, err)
	return msg
}

func TestDeliver(t *testing.T) {
	sess := newMockSession()
	tr := testTransport(sess, nil, nil)

	require.NoError(t, tr.Deliver(testMessage(t)))

	// No credentials, so no authentication phase.
	assert.Equal(t, 0, sess.calls["Auth"])
	assert.Equal(t, 1, sess.calls["Mail"])
	assert.Equal(t, 1, sess.calls["Rcpt"])
	assert.Equal(t, 1, sess.calls["Data"])
	assert.Equal(t, 1, sess.calls["Quit"])
	assert.Contains(t, string(sess.data.written), "Subject: Test")
}

func TestDeliverAuthenticates(t *testing.T) {
	sess := newMockSession()
	tr := testTransport(sess, nil, &creds.Credential{Username: "alice", Password: "secret"})

	require.NoError(t, tr.Deliver(testMessage(t)))
	assert.Equal(t, 1, sess.calls["Auth"])
}

func TestDeliverConnectFailure(t *testing.T) {
	tr := testTransport(nil, errors.New("connection refused"), &creds.Credential{Username: "a", Password: "b"})

	err := tr.Deliver(testMessage(t))
	assert.ErrorIs(t, err, errkind.ErrSMTPConnect)
}

func TestDeliverAuthFailure(t *testing.T) {
	sess := newMockSession()
	sess.failOn = "auth"
	tr := testTransport(sess, nil, &creds.Credential{Username: "alice", Password: "wrong"})

	err := tr.Deliver(testMessage(t))
	assert.ErrorIs(t, err, errkind.ErrSMTPAuth)

	// The session is closed even though the login failed, and no send is
	// attempted.
	assert.Equal(t, 1, sess.calls["Quit"])
	assert.Equal(t, 0, sess.calls["Mail"])
}

func TestDeliverSendFailures(t *testing.T) {
	tests := []struct {
		name   string
		failOn string
	}{
		{"sender rejected", "mail"},
		{"recipient rejected", "rcpt"},
		{"data refused", "data"},
		{"write failed", "write"},
		{"message rejected on close", "close"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := newMockSession()
			sess.failOn = tt.failOn
			tr := testTransport(sess, nil, nil)

			err := tr.Deliver(testMessage(t))
			assert.ErrorIs(t, err, errkind.ErrSMTPSend)
			assert.Equal(t, 1, sess.calls["Quit"])
		})
	}
}

func TestDeliverQuitFailureDoesNotMaskSuccess(t *testing.T) {
	sess := newMockSession()
	sess.failOn = "quit"
	tr := testTransport(sess, nil, nil)

	require.NoError(t, tr.Deliver(testMessage(t)))
	assert.Equal(t, 1, sess.calls["Close"])
}
