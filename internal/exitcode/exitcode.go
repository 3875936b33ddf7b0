package exitcode

import (
	"errors"

	"github.com/kiinoda/mailout/internal/errkind"
)

// Exit codes are the external contract callers script against. Scripts
// distinguish "retry later" (connect), "fix credentials" (auth) and
// "message rejected" (send) by code alone.

const (
	// Success indicates the message was delivered.
	Success = 0

	// ArgumentError indicates conflicting or missing command line arguments.
	ArgumentError = 1

	// FileNotFound indicates a referenced file does not exist or is unreadable.
	FileNotFound = 2

	// FileReadError indicates an I/O failure reading a referenced file.
	FileReadError = 3

	// AttachmentError indicates one or more attachments failed to embed.
	AttachmentError = 4

	// SMTPConnectError indicates the SMTP server could not be reached.
	SMTPConnectError = 5

	// SMTPAuthError indicates SMTP authentication failed.
	SMTPAuthError = 6

	// SMTPSendError indicates the server rejected the message.
	SMTPSendError = 7

	// InvalidEmail indicates an email address failed validation.
	InvalidEmail = 8

	// NoFiles indicates no valid attachment files were resolved.
	NoFiles = 9

	// UnknownError indicates an unclassified internal error.
	UnknownError = 99
)

// FromError maps an error chain to the exit code of the first recognized
// error kind. A nil error maps to Success, anything unrecognized to
// UnknownError.
func FromError(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, errkind.ErrArgument),
		errors.Is(err, errkind.ErrCredentialFormat):
		return ArgumentError
	case errors.Is(err, errkind.ErrFileNotFound):
		return FileNotFound
	case errors.Is(err, errkind.ErrFileRead):
		return FileReadError
	case errors.Is(err, errkind.ErrAttachment):
		return AttachmentError
	case errors.Is(err, errkind.ErrSMTPConnect):
		return SMTPConnectError
	case errors.Is(err, errkind.ErrSMTPAuth):
		return SMTPAuthError
	case errors.Is(err, errkind.ErrSMTPSend):
		return SMTPSendError
	case errors.Is(err, errkind.ErrInvalidAddress):
		return InvalidEmail
	case errors.Is(err, errkind.ErrNoFiles):
		return NoFiles
	default:
		return UnknownError
	}
}
