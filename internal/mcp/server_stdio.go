package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"

	errors "github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"
)

// ServeStdio reads newline-delimited JSON-RPC messages from r and writes
// responses to w, one per line, until r is exhausted or ctx is done.
func (s *Server) ServeStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		reader := bufio.NewReader(r)
		for {
			line, err := reader.ReadBytes('\n')
			if len(bytes.TrimSpace(line)) > 0 {
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr <- errors.Wrap(err, "read stdin")
				}
				return
			}
		}
	}()

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	s.logger.Info("serving mcp over stdio")
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					s.logger.Info("stdin closed, stopping")
					return nil
				}
			}

			resp := s.handleLine(ctx, bytes.TrimSpace(line))
			if resp == nil {
				continue
			}
			if err := encoder.Encode(resp); err != nil {
				return errors.Wrap(err, "write response")
			}
		}
	}
}

func (s *Server) handleLine(ctx context.Context, line []byte) any {
	if !json.Valid(line) {
		s.logger.Warn("discard malformed message", zap.Int("bytes", len(line)))
		return newRPCError(nil, mcp.PARSE_ERROR, "parse error: message is not valid JSON", "")
	}
	return s.HandleMessage(ctx, json.RawMessage(line))
}
