package nativemsg

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
)

// Handler turns one request payload into one response value. It must not
// panic and must always return something writable; data-source failures
// surface as structured error responses, not dropped frames.
type Handler interface {
	Handle(ctx context.Context, payload json.RawMessage) any
}

// Host runs the synchronous request/response loop: read one frame, handle
// it to completion, write the response, repeat. The caller sends one
// request at a time and expects strictly ordered responses, so there is
// nothing to parallelize.
type Host struct {
	reader  *Reader
	writer  *Writer
	handler Handler
	logger  *slog.Logger
}

func NewHost(r io.Reader, w io.Writer, handler Handler, logger *slog.Logger) *Host {
	return &Host{
		reader:  NewReader(r),
		writer:  NewWriter(w),
		handler: handler,
		logger:  logger,
	}
}

// Run loops until end of stream or a protocol violation. Only protocol
// errors are returned; everything else becomes an in-band response.
func (h *Host) Run(ctx context.Context) error {
	for {
		payload, err := h.reader.Read()
		if errors.Is(err, io.EOF) {
			h.logger.Info("input stream closed, shutting down")
			return nil
		}
		if err != nil {
			h.logger.Error("protocol failure", "err", err)
			return err
		}

		response := h.handler.Handle(ctx, payload)
		if err := h.writer.Write(response); err != nil {
			h.logger.Error("write failed", "err", err)
			return err
		}
	}
}
