package config

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/kiinoda/mailout/internal/address"
	"github.com/kiinoda/mailout/internal/errkind"
)

// Fixed defaults for the command surface.
const (
	// DefaultSender is the administrative address used when no sender is
	// given. It is a trusted constant; a unit test keeps it valid.
	DefaultSender = "noreply@example.com"

	// DefaultSubject is used when no subject is given.
	DefaultSubject = "Message with attachments"

	// DefaultLogFile is used when --log is passed without a value.
	DefaultLogFile = "mailout.log"
)

// Config holds the fully validated program configuration. Once New returns,
// no field needs re-checking downstream.
type Config struct {
	Server    string
	Port      int
	To        string
	From      string
	Subject   string
	Files     string
	FilesList string
	Text      string
	TextFile  string
	Auth      string
	AuthFile  string
	UseSSL    bool
	LogFile   string
}

// New parses the given command line arguments and validates the result.
// Argument errors are reported before any logging sink exists, so callers
// print them to stderr themselves.
func New(args []string) (*Config, error) {
	cfg := &Config{}

	fs := pflag.NewFlagSet("mailout", pflag.ContinueOnError)
	fs.StringVarP(&cfg.Server, "server", "s", "", "SMTP server host")
	fs.IntVarP(&cfg.Port, "port", "p", 0, "SMTP server port")
	fs.StringVarP(&cfg.To, "to", "t", "", "recipient address")
	fs.StringVarP(&cfg.From, "from", "f", "", "sender address (default "+DefaultSender+")")
	fs.StringVarP(&cfg.Subject, "subject", "j", DefaultSubject, "message subject")
	fs.StringVarP(&cfg.Files, "files", "a", "", "files to attach, comma separated")
	fs.StringVar(&cfg.FilesList, "files-list", "", "file listing one attachment path per line")
	fs.StringVarP(&cfg.Text, "text", "b", "", "message body text")
	fs.StringVar(&cfg.TextFile, "text-file", "", "file holding the message body text")
	fs.StringVarP(&cfg.Auth, "auth", "u", "", "credentials as username:password")
	fs.StringVar(&cfg.AuthFile, "auth-file", "", "file holding credentials as username:password")
	fs.BoolVarP(&cfg.UseSSL, "ssl", "S", false, "connect over SSL/TLS")
	fs.StringVarP(&cfg.LogFile, "log", "l", "", "log file (default "+DefaultLogFile+" when passed without value)")
	fs.Lookup("log").NoOptDefVal = DefaultLogFile

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errkind.ErrArgument, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces required flags, mutual exclusions and address syntax.
// It runs before any file or network I/O.
func (cfg *Config) validate() error {
	if cfg.Server == "" {
		return fmt.Errorf("%w: --server is required", errkind.ErrArgument)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("%w: --port is required and must be a valid port number", errkind.ErrArgument)
	}
	if cfg.To == "" {
		return fmt.Errorf("%w: --to is required", errkind.ErrArgument)
	}
	if cfg.Files != "" && cfg.FilesList != "" {
		return fmt.Errorf("%w: --files and --files-list cannot be combined", errkind.ErrArgument)
	}
	if cfg.Files == "" && cfg.FilesList == "" {
		return fmt.Errorf("%w: one of --files or --files-list is required", errkind.ErrNoFiles)
	}
	if cfg.Text != "" && cfg.TextFile != "" {
		return fmt.Errorf("%w: --text and --text-file cannot be combined", errkind.ErrArgument)
	}
	if cfg.Auth != "" && cfg.AuthFile != "" {
		return fmt.Errorf("%w: --auth and --auth-file cannot be combined", errkind.ErrArgument)
	}

	if cfg.From != "" && !address.Valid(cfg.From) {
		return fmt.Errorf("%w: sender %q", errkind.ErrInvalidAddress, cfg.From)
	}
	if !address.Valid(cfg.To) {
		return fmt.Errorf("%w: recipient %q", errkind.ErrInvalidAddress, cfg.To)
	}

	return nil
}

// Sender returns the explicit sender address, or the administrative
// fallback when none was given.
func (cfg *Config) Sender() string {
	if cfg.From != "" {
		return cfg.From
	}
	return DefaultSender
}
