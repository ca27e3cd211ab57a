package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"hmidash/internal/telemetry"
)

// JSONStdoutWriter prints frames and alert events as JSON to STDOUT.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

// WriteFrame outputs a frame in JSON format.
func (w *JSONStdoutWriter) WriteFrame(row telemetry.FrameRow) error {
	return w.line(row)
}

// WriteAlertEvent outputs an alert event in JSON format.
func (w *JSONStdoutWriter) WriteAlertEvent(row telemetry.AlertEventRow) error {
	return w.line(row)
}

func (w *JSONStdoutWriter) line(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}
