// Package attach turns a file list specification into a verified, ordered
// set of attachment sources. Resolution is fail-fast: the first bad path
// aborts the whole list, because sending with known-bad paths is pointless.
package attach

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kiinoda/mailout/internal/errkind"
)

// Source is one file to embed into the outgoing message. Name is the
// basename advertised to the mail client, independent of Path.
type Source struct {
	Path string
	Name string
}

// Resolver verifies attachment specifications against the filesystem.
type Resolver struct {
	log zerolog.Logger
}

// NewResolver returns a Resolver logging through the given handle.
func NewResolver(log zerolog.Logger) *Resolver {
	return &Resolver{log: log}
}

// Resolve expands either an inline comma separated path list or a list file
// holding one path per line. Blank entries are skipped, order is preserved
// and duplicates are kept. Every path is checked for existence, regular
// file mode and read permission; the first failing path aborts resolution.
// An empty result after skipping blanks is a distinct error.
func (r *Resolver) Resolve(inline, listFile string) ([]Source, error) {
	if listFile != "" {
		return r.resolveListFile(listFile)
	}
	return r.resolveInline(inline)
}

func (r *Resolver) resolveInline(spec string) ([]Source, error) {
	var sources []Source
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		src, err := r.verify(entry)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		r.log.Error().Msg("no attachment files specified")
		return nil, fmt.Errorf("%w: empty file list", errkind.ErrNoFiles)
	}
	r.log.Info().Int("count", len(sources)).Msg("attachment files resolved")
	return sources, nil
}

func (r *Resolver) resolveListFile(path string) ([]Source, error) {
	if _, err := r.verify(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		r.log.Error().Err(err).Str("file", path).Msg("cannot read files list")
		return nil, fmt.Errorf("%w: %s", errkind.ErrFileRead, path)
	}

	var sources []Source
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		src, err := r.verify(line)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		r.log.Error().Str("file", path).Msg("files list contains no usable entries")
		return nil, fmt.Errorf("%w: %s lists no files", errkind.ErrNoFiles, path)
	}
	r.log.Info().Int("count", len(sources)).Str("file", path).Msg("attachment files read from list")
	return sources, nil
}

// verify checks existence, regular file mode and read permission, in that
// order. Existence is checked once here and not re-verified at send time.
func (r *Resolver) verify(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		r.log.Error().Str("file", path).Msg("file does not exist")
		return Source{}, fmt.Errorf("%w: %s", errkind.ErrFileNotFound, path)
	}
	if !info.Mode().IsRegular() {
		r.log.Error().Str("file", path).Msg("path is not a regular file")
		return Source{}, fmt.Errorf("%w: %s is not a regular file", errkind.ErrFileNotFound, path)
	}
	f, err := os.Open(path)
	if err != nil {
		r.log.Error().Str("file", path).Msg("file is not readable")
		return Source{}, fmt.Errorf("%w: %s is not readable", errkind.ErrFileNotFound, path)
	}
	f.Close()
	return Source{Path: path, Name: filepath.Base(path)}, nil
}
