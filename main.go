package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/kiinoda/mailout/internal/attach"
	"github.com/kiinoda/mailout/internal/body"
	"github.com/kiinoda/mailout/internal/config"
	"github.com/kiinoda/mailout/internal/creds"
	"github.com/kiinoda/mailout/internal/exitcode"
	"github.com/kiinoda/mailout/internal/logging"
	"github.com/kiinoda/mailout/internal/message"
	"github.com/kiinoda/mailout/internal/relay"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Load configuration. Its errors are reported on stderr because the
	// log sink is itself part of the configuration.
	cfg, err := config.New(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitcode.Success
		}
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return exitcode.FromError(err)
	}

	logger, closeLog := logging.New(cfg.LogFile)
	defer closeLog()

	if err := send(cfg, logger); err != nil {
		return exitcode.FromError(err)
	}

	logger.Info().Msg("finished successfully")
	return exitcode.Success
}

// send runs the composition and delivery pipeline: credentials and
// attachments are resolved first, then the body is decided, the message
// assembled, the attachments embedded and a single delivery attempted.
func send(cfg *config.Config, log zerolog.Logger) error {
	cred, err := creds.Resolve(cfg.Auth, cfg.AuthFile, log)
	if err != nil {
		return err
	}

	sources, err := attach.NewResolver(log).Resolve(cfg.Files, cfg.FilesList)
	if err != nil {
		return err
	}

	text := body.NewResolver(log).Resolve(cfg.TextFile, cfg.Text, sources, cfg.From)

	msg, err := message.Build(cfg.Sender(), cfg.To, cfg.Subject, text, log)
	if err != nil {
		return err
	}
	if err := msg.Attach(sources); err != nil {
		return err
	}

	return relay.New(cfg.Server, cfg.Port, cfg.UseSSL, cred, log).Deliver(msg)
}
