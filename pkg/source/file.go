package source

import (
	"context"
	"io"
	"os"

	"github.com/matzehuels/butterfly/pkg/errors"
)

// FileSource reads a local text file.
type FileSource struct{ path string }

// NewFileSource returns a source for the text file at path.
func NewFileSource(path string) *FileSource { return &FileSource{path: path} }

func (s *FileSource) Name() string { return s.path }
func (s *FileSource) Kind() Kind   { return KindFile }

func (s *FileSource) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", readError(s.path, err)
	}
	return string(data), nil
}

// StdinSource reads everything from a reader, normally os.Stdin.
type StdinSource struct{ r io.Reader }

// NewStdinSource returns a source reading r to EOF.
func NewStdinSource(r io.Reader) *StdinSource { return &StdinSource{r: r} }

func (s *StdinSource) Name() string { return "stdin" }
func (s *StdinSource) Kind() Kind   { return KindStdin }

func (s *StdinSource) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := io.ReadAll(s.r)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
	}
	return string(data), nil
}

func readError(path string, err error) error {
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
	}
	return errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
}
