// Package creds resolves SMTP login credentials from an inline
// "username:password" string or from a credential file.
package creds

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kiinoda/mailout/internal/errkind"
)

// Credential is a resolved SMTP login pair.
type Credential struct {
	Username string
	Password string
}

// Resolve turns the inline spec or the credential file into a Credential.
// At most one of inline/file is expected; the caller enforces exclusivity.
// When neither is given, Resolve returns nil and no error, meaning the
// session is unauthenticated.
func Resolve(inline, file string, log zerolog.Logger) (*Credential, error) {
	switch {
	case inline != "":
		return parse(inline)
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			log.Error().Err(err).Str("file", file).Msg("cannot read credential file")
			if os.IsNotExist(err) || os.IsPermission(err) {
				return nil, fmt.Errorf("%w: %s", errkind.ErrFileNotFound, file)
			}
			return nil, fmt.Errorf("%w: %s", errkind.ErrFileRead, file)
		}
		cred, err := parse(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, err
		}
		log.Info().Str("file", file).Msg("credentials read from file")
		return cred, nil
	default:
		return nil, nil
	}
}

// parse splits a "username:password" pair on the first colon.
func parse(spec string) (*Credential, error) {
	username, password, ok := strings.Cut(spec, ":")
	if !ok || username == "" {
		return nil, fmt.Errorf("%w: expected username:password", errkind.ErrCredentialFormat)
	}
	return &Credential{Username: username, Password: password}, nil
}
