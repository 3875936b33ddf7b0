// Package errkind defines the closed set of error kinds the pipeline can
// produce. Every stage wraps one of these sentinels into its returned error
// chain; exitcode.FromError walks the chain to pick the process exit code.
package errkind

import "errors"

var (
	// ErrArgument signals conflicting or missing command line arguments.
	ErrArgument = errors.New("argument error")

	// ErrInvalidAddress signals a sender or recipient address that failed
	// syntactic validation.
	ErrInvalidAddress = errors.New("invalid email address")

	// ErrFileNotFound signals a referenced file that does not exist, is not
	// a regular file, or cannot be opened for reading.
	ErrFileNotFound = errors.New("file not found or unreadable")

	// ErrFileRead signals an I/O failure while reading a file that was
	// successfully opened.
	ErrFileRead = errors.New("file read error")

	// ErrNoFiles signals that no attachment files were specified or that
	// the file specification resolved to an empty set.
	ErrNoFiles = errors.New("no attachment files")

	// ErrAttachment signals that one or more attachments failed to embed
	// into the outgoing message.
	ErrAttachment = errors.New("attachment error")

	// ErrCredentialFormat signals credentials that are not in
	// "username:password" form.
	ErrCredentialFormat = errors.New("malformed credentials")

	// ErrSMTPConnect signals a failure to establish the SMTP session.
	ErrSMTPConnect = errors.New("smtp connection error")

	// ErrSMTPAuth signals a failed SMTP login.
	ErrSMTPAuth = errors.New("smtp authentication error")

	// ErrSMTPSend signals that the server rejected the message or the data
	// transfer failed.
	ErrSMTPSend = errors.New("smtp send error")
)
