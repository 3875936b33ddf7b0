// Package body decides the outgoing message text. Sources are tried in
// priority order: an external text file, inline text, then an auto
// generated manifest of the attached files. Whatever wins gets the fixed
// signature block appended.
package body

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kiinoda/mailout/internal/attach"
	"github.com/kiinoda/mailout/internal/config"
)

const (
	manifestHeader = "Files sent to you:"
	disclaimer     = "This message was sent automatically, there is no need to reply to it."
)

// Resolver picks the message body text.
type Resolver struct {
	log zerolog.Logger
}

// NewResolver returns a Resolver logging through the given handle.
func NewResolver(log zerolog.Logger) *Resolver {
	return &Resolver{log: log}
}

// Resolve returns the signed message body. A text file that cannot be read
// is a soft failure: it is logged and the next priority takes over.
func (r *Resolver) Resolve(textFile, text string, sources []attach.Source, sender string) string {
	if textFile != "" {
		content, err := os.ReadFile(textFile)
		if err != nil {
			r.log.Warn().Err(err).Str("file", textFile).Msg("cannot read body text file, falling back")
		} else {
			r.log.Info().Str("file", textFile).Msg("message body read from file")
			return Sign(string(content), sender)
		}
	}

	if text != "" {
		r.log.Info().Msg("using message body from arguments")
		return Sign(text, sender)
	}

	r.log.Info().Msg("using generated message body")
	return Sign(manifest(sources), sender)
}

// manifest lists the attachments by display name, one numbered line each.
func manifest(sources []attach.Source) string {
	var b strings.Builder
	b.WriteString(manifestHeader)
	for i, src := range sources {
		fmt.Fprintf(&b, "\n%d. %s", i+1, src.Name)
	}
	return b.String()
}

// Sign appends the fixed disclaimer and a reply-to line naming the explicit
// sender, or the administrative fallback address when none was given. Sign
// is pure: the same body and sender always yield the same output.
func Sign(body, sender string) string {
	replyTo := sender
	if replyTo == "" {
		replyTo = config.DefaultSender
	}
	return body + "\n\n" + disclaimer + "\nAddress for replies: " + replyTo
}
