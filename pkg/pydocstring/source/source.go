// Package source reads and writes Python files on the local disk or over
// SFTP, decoding them from a configurable text encoding.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"github.com/spf13/afero/sftpfs"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/log"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/sftp"
)

// DefaultEncoding is used when Options.Encoding is empty.
const DefaultEncoding = "utf-8"

// PasswordFunc supplies the password of a remote path whose URL has none.
type PasswordFunc func(details sftp.ConnectionDetails) (string, error)

// Options configure a Source.
type Options struct {
	// Fs holds local files. Defaults to the OS file system.
	Fs       afero.Fs
	Encoding string
	// Manager pools SFTP connections. Defaults to the global manager.
	Manager  *sftp.Manager
	Password PasswordFunc
	Logger   *zap.SugaredLogger
}

// Source reads and writes files named by a Path.
type Source struct {
	local    afero.Fs
	encoding encoding.Encoding
	manager  *sftp.Manager
	password PasswordFunc
	logger   *zap.SugaredLogger
}

// New validates the encoding and returns a Source.
func New(opts Options) (*Source, error) {
	if opts.Encoding == "" {
		opts.Encoding = DefaultEncoding
	}
	enc, err := ianaindex.IANA.Encoding(opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", opts.Encoding, err)
	}
	if enc == nil {
		enc = encoding.Nop
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	return &Source{
		local:    opts.Fs,
		encoding: enc,
		manager:  opts.Manager,
		password: opts.Password,
		logger:   log.Nop(opts.Logger),
	}, nil
}

// fsFor returns the file system holding p.
func (s *Source) fsFor(ctx context.Context, op string, p *Path) (afero.Fs, error) {
	if !p.IsRemote() {
		return s.local, nil
	}

	details := p.Details()
	if details.Password == "" && s.password != nil {
		password, err := s.password(details)
		if err != nil {
			return nil, &PathError{Op: op + "-password", Path: p.String(), Err: err}
		}
		details.Password = password
	}

	manager := s.manager
	if manager == nil {
		manager = sftp.GetGlobalManager()
	}
	client, err := manager.GetClient(ctx, details)
	if err != nil {
		return nil, &PathError{Op: op + "-connect", Path: p.String(), Err: err}
	}
	return sftpfs.New(client), nil
}

// Read returns the decoded text of p.
func (s *Source) Read(ctx context.Context, p *Path) (string, error) {
	fsys, err := s.fsFor(ctx, "read", p)
	if err != nil {
		return "", err
	}

	file, err := fsys.Open(p.Name())
	if err != nil {
		return "", &PathError{Op: "read-open", Path: p.String(), Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.logger.Warnw("error closing file", "path", p.String(), "error", err)
		}
	}()

	content, err := afero.ReadAll(file)
	if err != nil {
		return "", &PathError{Op: "read-read-all", Path: p.String(), Err: err}
	}
	decoded, err := s.encoding.NewDecoder().Bytes(content)
	if err != nil {
		return "", &PathError{Op: "read-decode", Path: p.String(), Err: err}
	}
	return string(decoded), nil
}

// Write encodes text and replaces the content of p. Text the encoding
// cannot represent is rejected before the file is touched.
func (s *Source) Write(ctx context.Context, p *Path, text string) error {
	encoded, err := s.encoding.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return &PathError{Op: "write-encode", Path: p.String(), Err: err}
	}
	decoded, err := s.encoding.NewDecoder().Bytes(encoded)
	if err != nil || string(decoded) != text {
		return &PathError{Op: "write-validate", Path: p.String(),
			Err: errors.New("content cannot be represented in the configured encoding")}
	}

	fsys, err := s.fsFor(ctx, "write", p)
	if err != nil {
		return err
	}

	mode := os.FileMode(0o644)
	if info, err := fsys.Stat(p.Name()); err == nil {
		mode = info.Mode().Perm()
	}

	file, err := fsys.OpenFile(p.Name(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return &PathError{Op: "write-create", Path: p.String(), Err: err}
	}
	if _, err := file.Write(encoded); err != nil {
		_ = file.Close()
		return &PathError{Op: "write-write", Path: p.String(), Err: err}
	}
	if err := file.Close(); err != nil {
		return &PathError{Op: "write-close", Path: p.String(), Err: err}
	}
	return nil
}

// List expands p into the Python files it names: p itself when it is a
// file, every .py and .pyi file below it when it is a directory. Hidden
// directories are skipped.
func (s *Source) List(ctx context.Context, p *Path) ([]*Path, error) {
	fsys, err := s.fsFor(ctx, "list", p)
	if err != nil {
		return nil, err
	}

	info, err := fsys.Stat(p.Name())
	if err != nil {
		return nil, &PathError{Op: "list-stat", Path: p.String(), Err: err}
	}
	if !info.IsDir() {
		return []*Path{p}, nil
	}

	var paths []*Path
	err = afero.Walk(fsys, p.Name(), func(name string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if info.IsDir() {
			if name != p.Name() && len(info.Name()) > 1 && info.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(p.Name(), name)
		if err != nil {
			return err
		}
		child := p.Join(filepath.ToSlash(rel))
		if child.IsPython() {
			paths = append(paths, child)
		}
		return nil
	})
	if err != nil {
		return nil, &PathError{Op: "list-walk", Path: p.String(), Err: err}
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i].Name() < paths[j].Name() })
	return paths, nil
}
