// Package relay owns the SMTP session lifecycle: a timed connect over a
// plain or encrypted transport, an optional login, the message transaction
// and a guaranteed session teardown.
package relay

import (
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/kiinoda/mailout/internal/creds"
	"github.com/kiinoda/mailout/internal/errkind"
	"github.com/kiinoda/mailout/internal/message"
)

const (
	// dialTimeout bounds how long a hung relay can stall the connect phase.
	dialTimeout = 5 * time.Second

	// sessionDeadline bounds the remaining phases of the session so a
	// relay that goes silent mid transaction cannot stall the process.
	sessionDeadline = 30 * time.Second
)

// Session is the part of the SMTP client the transport drives. It exists
// so tests can substitute the live client.
type Session interface {
	Auth(a smtp.Auth) error
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// dialFunc establishes a session with a greeted SMTP server.
type dialFunc func(server string, port int, useSSL bool) (Session, error)

// Transport performs a single delivery attempt. There is no retry loop.
type Transport struct {
	server string
	port   int
	useSSL bool
	cred   *creds.Credential
	log    zerolog.Logger
	dial   dialFunc
}

// New returns a Transport for the given relay. A nil credential means the
// authentication phase is skipped.
func New(server string, port int, useSSL bool, cred *creds.Credential, log zerolog.Logger) *Transport {
	return &Transport{
		server: server,
		port:   port,
		useSSL: useSSL,
		cred:   cred,
		log:    log,
		dial:   dialSession,
	}
}

// Deliver drives the session through connect, optional authenticate, send
// and quit. The session is torn down on every path; a teardown failure is
// logged and never masks the primary result.
func (t *Transport) Deliver(msg *message.Message) error {
	t.log.Info().
		Str("server", t.server).
		Int("port", t.port).
		Bool("ssl", t.useSSL).
		Msg("connecting to SMTP server")

	sess, err := t.dial(t.server, t.port, t.useSSL)
	if err != nil {
		t.log.Error().Err(err).Msg("connection failed")
		return fmt.Errorf("%w: %v", errkind.ErrSMTPConnect, err)
	}
	defer func() {
		if qerr := sess.Quit(); qerr != nil {
			t.log.Warn().Err(qerr).Msg("error closing SMTP session")
			sess.Close()
		}
	}()

	if t.cred != nil {
		auth := smtp.PlainAuth("", t.cred.Username, t.cred.Password, t.server)
		if err := sess.Auth(auth); err != nil {
			t.log.Error().Err(err).Str("username", t.cred.Username).Msg("authentication failed")
			return fmt.Errorf("%w: %v", errkind.ErrSMTPAuth, err)
		}
		t.log.Info().Str("username", t.cred.Username).Msg("authenticated")
	}

	from, to := msg.Envelope()
	if err := sess.Mail(from); err != nil {
		t.log.Error().Err(err).Str("address", from).Msg("sender rejected")
		return fmt.Errorf("%w: %v", errkind.ErrSMTPSend, err)
	}
	if err := sess.Rcpt(to); err != nil {
		t.log.Error().Err(err).Str("address", to).Msg("recipient rejected")
		return fmt.Errorf("%w: %v", errkind.ErrSMTPSend, err)
	}

	wc, err := sess.Data()
	if err != nil {
		t.log.Error().Err(err).Msg("data transfer refused")
		return fmt.Errorf("%w: %v", errkind.ErrSMTPSend, err)
	}
	if _, err := msg.WriteTo(wc); err != nil {
		t.log.Error().Err(err).Msg("error writing message data")
		wc.Close()
		return fmt.Errorf("%w: %v", errkind.ErrSMTPSend, err)
	}
	if err := wc.Close(); err != nil {
		t.log.Error().Err(err).Msg("message rejected")
		return fmt.Errorf("%w: %v", errkind.ErrSMTPSend, err)
	}

	t.log.Info().Str("from", from).Str("to", to).Msg("message accepted by server")
	return nil
}

// dialSession connects with a bounded timeout, over implicit TLS when
// requested, and waits for the server greeting.
func dialSession(server string, port int, useSSL bool) (Session, error) {
	addr := net.JoinHostPort(server, strconv.Itoa(port))
	dialer := &net.Dialer{Timeout: dialTimeout}

	var conn net.Conn
	var err error
	if useSSL {
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: server})
	} else {
		conn, err = dialer.Dial("tcp", addr)
	}
	if err != nil {
		return nil, err
	}
	conn.SetDeadline(time.Now().Add(sessionDeadline))

	client, err := smtp.NewClient(conn, server)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return client, nil
}
