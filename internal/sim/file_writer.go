package sim

import (
	"encoding/json"
	"os"

	"hmidash/internal/telemetry"
)

// FileWriter writes frames and alert events to JSONL files.
type FileWriter struct {
	frameFile *os.File
	eventFile *os.File
	frameEnc  *json.Encoder
	eventEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. eventPath may be empty to skip the alert log.
func NewFileWriter(framePath, eventPath string) (*FileWriter, error) {
	ff, err := os.Create(framePath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{frameFile: ff, frameEnc: json.NewEncoder(ff)}
	if eventPath != "" {
		ef, err := os.Create(eventPath)
		if err != nil {
			ff.Close()
			return nil, err
		}
		fw.eventFile = ef
		fw.eventEnc = json.NewEncoder(ef)
	}
	return fw, nil
}

// WriteFrame logs a single frame.
func (f *FileWriter) WriteFrame(row telemetry.FrameRow) error {
	return f.frameEnc.Encode(row)
}

// WriteAlertEvent logs a single alert event, if enabled.
func (f *FileWriter) WriteAlertEvent(row telemetry.AlertEventRow) error {
	if f.eventEnc == nil {
		return nil
	}
	return f.eventEnc.Encode(row)
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.frameFile != nil {
		if e := f.frameFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.eventFile != nil {
		if e := f.eventFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
