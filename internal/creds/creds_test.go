package creds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiinoda/mailout/internal/errkind"
)

func TestResolveInline(t *testing.T) {
	tests := []struct {
		name    string
		inline  string
		want    *Credential
		wantErr error
	}{
		{"valid pair", "alice:secret", &Credential{Username: "alice", Password: "secret"}, nil},
		{"colon in password kept", "alice:se:cret", &Credential{Username: "alice", Password: "se:cret"}, nil},
		{"missing delimiter", "alice-secret", nil, errkind.ErrCredentialFormat},
		{"empty username", ":secret", nil, errkind.ErrCredentialFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.inline, "", zerolog.Nop())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auth")
	require.NoError(t, os.WriteFile(path, []byte("  bob:hunter2\n"), 0o600))

	got, err := Resolve("", path, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, &Credential{Username: "bob", Password: "hunter2"}, got)
}

func TestResolveFileMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auth")
	require.NoError(t, os.WriteFile(path, []byte("just-a-token\n"), 0o600))

	_, err := Resolve("", path, zerolog.Nop())
	assert.ErrorIs(t, err, errkind.ErrCredentialFormat)
}

func TestResolveFileMissing(t *testing.T) {
	_, err := Resolve("", filepath.Join(t.TempDir(), "absent"), zerolog.Nop())
	assert.ErrorIs(t, err, errkind.ErrFileNotFound)
}

func TestResolveNeither(t *testing.T) {
	got, err := Resolve("", "", zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, got)
}
