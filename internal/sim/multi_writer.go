package sim

import (
	"errors"
	"io"

	"hmidash/internal/telemetry"
)

// MultiWriter fan-outs frames and alert events to multiple writers.
type MultiWriter struct {
	frameWriters []FrameWriter
	eventWriters []AlertEventWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(fws []FrameWriter, ews []AlertEventWriter) *MultiWriter {
	return &MultiWriter{frameWriters: fws, eventWriters: ews}
}

// WriteFrame sends a frame to all frame writers. A failing writer does not
// keep the frame from the others.
func (mw *MultiWriter) WriteFrame(row telemetry.FrameRow) error {
	var errs []error
	for _, w := range mw.frameWriters {
		if err := w.WriteFrame(row); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteAlertEvent sends an alert event to all event writers.
func (mw *MultiWriter) WriteAlertEvent(row telemetry.AlertEventRow) error {
	var errs []error
	for _, w := range mw.eventWriters {
		if err := w.WriteAlertEvent(row); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SetAdminStatus forwards the admin API status to writers that display it.
func (mw *MultiWriter) SetAdminStatus(listening bool) {
	for _, w := range mw.frameWriters {
		if aw, ok := w.(AdminStatusWriter); ok {
			aw.SetAdminStatus(listening)
		}
	}
}

// Close closes every writer implementing io.Closer once.
func (mw *MultiWriter) Close() error {
	seen := make(map[any]struct{})
	var errs []error
	closeOnce := func(w any) {
		c, ok := w.(io.Closer)
		if !ok {
			return
		}
		if _, done := seen[w]; done {
			return
		}
		seen[w] = struct{}{}
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, w := range mw.frameWriters {
		closeOnce(w)
	}
	for _, w := range mw.eventWriters {
		closeOnce(w)
	}
	return errors.Join(errs...)
}
