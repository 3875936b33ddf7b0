package exitcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kiinoda/mailout/internal/errkind"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, Success},
		{"argument error", fmt.Errorf("%w: --server is required", errkind.ErrArgument), ArgumentError},
		{"credential format", fmt.Errorf("%w: no delimiter", errkind.ErrCredentialFormat), ArgumentError},
		{"file not found", fmt.Errorf("%w: a.txt", errkind.ErrFileNotFound), FileNotFound},
		{"file read", fmt.Errorf("%w: list.txt", errkind.ErrFileRead), FileReadError},
		{"attachment", fmt.Errorf("%w: 1 of 2 failed", errkind.ErrAttachment), AttachmentError},
		{"connect", fmt.Errorf("%w: refused", errkind.ErrSMTPConnect), SMTPConnectError},
		{"auth", fmt.Errorf("%w: 535", errkind.ErrSMTPAuth), SMTPAuthError},
		{"send", fmt.Errorf("%w: 554", errkind.ErrSMTPSend), SMTPSendError},
		{"invalid address", fmt.Errorf("%w: nope", errkind.ErrInvalidAddress), InvalidEmail},
		{"no files", fmt.Errorf("%w", errkind.ErrNoFiles), NoFiles},
		{"deeply wrapped", fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", errkind.ErrSMTPAuth)), SMTPAuthError},
		{"unclassified", errors.New("something else"), UnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromError(tt.err))
		})
	}
}
