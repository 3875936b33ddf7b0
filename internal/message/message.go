// Package message assembles the outgoing MIME message: envelope headers,
// a UTF-8 plain text body part and binary attachment parts.
package message

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	mail "github.com/wneessen/go-mail"

	"github.com/kiinoda/mailout/internal/attach"
	"github.com/kiinoda/mailout/internal/errkind"
)

// Message is a composed outgoing message ready for delivery.
type Message struct {
	msg       *mail.Msg
	sender    string
	recipient string
	log       zerolog.Logger
}

// Build sets the From/To/Subject headers and the text body part. Headers
// are set before any attachment is embedded. Construction failures are
// internal errors, not user input errors.
func Build(sender, recipient, subject, body string, log zerolog.Logger) (*Message, error) {
	msg := mail.NewMsg()
	if err := msg.From(sender); err != nil {
		log.Error().Err(err).Str("address", sender).Msg("cannot set sender header")
		return nil, fmt.Errorf("setting sender header: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		log.Error().Err(err).Str("address", recipient).Msg("cannot set recipient header")
		return nil, fmt.Errorf("setting recipient header: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return &Message{msg: msg, sender: sender, recipient: recipient, log: log}, nil
}

// Attach reads each source and embeds it as a binary part carrying the
// source's basename as its disposition filename. A failed read does not
// stop the remaining attachments; outcomes are collected and aggregated
// after all sources were attempted.
func (m *Message) Attach(sources []attach.Source) error {
	var failed []string
	for _, src := range sources {
		if err := m.attachOne(src); err != nil {
			m.log.Error().Err(err).Str("file", src.Path).Msg("cannot attach file")
			failed = append(failed, src.Name)
			continue
		}
		m.log.Info().Str("file", src.Name).Msg("attachment added")
	}
	if len(failed) > 0 {
		return fmt.Errorf("%w: %d of %d files failed to attach", errkind.ErrAttachment, len(failed), len(sources))
	}
	return nil
}

func (m *Message) attachOne(src attach.Source) error {
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return err
	}
	return m.msg.AttachReader(src.Name, bytes.NewReader(data))
}

// Envelope returns the sender and recipient addresses for the SMTP
// transaction.
func (m *Message) Envelope() (from, to string) {
	return m.sender, m.recipient
}

// WriteTo serializes the message in wire format.
func (m *Message) WriteTo(w io.Writer) (int64, error) {
	return m.msg.WriteTo(w)
}
