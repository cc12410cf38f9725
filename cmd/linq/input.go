package main

import (
	"bufio"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/kbukum/linqkit/errors"
	"github.com/kbukum/linqkit/recipe"
)

// lineSource decodes one JSON object per record from a stream. It is a
// one-shot iterator: records are read as they are pulled.
type lineSource struct {
	ctx    context.Context
	dec    *json.Decoder
	closer io.Closer
	name   string
	count  int
}

func openInput(ctx context.Context, path string, stdin io.Reader) (*lineSource, error) {
	if path == "" || path == "-" {
		return newLineSource(ctx, stdin, nil, "stdin"), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return newLineSource(ctx, bufio.NewReader(f), f, path), nil
}

func newLineSource(ctx context.Context, r io.Reader, closer io.Closer, name string) *lineSource {
	return &lineSource{
		ctx:    ctx,
		dec:    json.NewDecoder(r),
		closer: closer,
		name:   name,
	}
}

func (s *lineSource) Next() (recipe.Record, bool, error) {
	if err := s.ctx.Err(); err != nil {
		return nil, false, err
	}
	var rec recipe.Record
	if err := s.dec.Decode(&rec); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, false, nil
		}
		return nil, false, errors.InvalidFormat(s.name, err).WithDetail("record", s.count+1)
	}
	s.count++
	if rec == nil {
		return nil, false, errors.InvalidFormat(s.name, fmt.Errorf("record %d is null", s.count)).
			WithDetail("record", s.count)
	}
	return rec, true, nil
}

// Close closes the underlying file. It is safe to call more than once.
func (s *lineSource) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}
