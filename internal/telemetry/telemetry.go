// Package telemetry records per-tick world statistics as zstd-compressed
// JSON lines.
package telemetry

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"mad-sand/internal/element"
	"mad-sand/internal/sims/sand"
)

// TickRecord is one line of a telemetry file.
type TickRecord struct {
	Scene   string         `json:"scene"`
	Tick    uint64         `json:"tick"`
	Elapsed time.Duration  `json:"elapsed_ns"`
	Updated uint64         `json:"updated"`
	Burning int            `json:"burning"`
	Census  map[string]int `json:"census"`

	CPUPercent float64 `json:"cpu_percent,omitempty"`
	RSSBytes   uint64  `json:"rss_bytes,omitempty"`
}

// Snapshot fills a record from the world's current state.
func Snapshot(w *sand.World, elapsed time.Duration) TickRecord {
	census := w.Census()
	rec := TickRecord{
		Scene:   w.Name(),
		Tick:    w.Tick(),
		Elapsed: elapsed,
		Updated: w.Updated(),
		Burning: w.Burning(),
		Census:  make(map[string]int, element.Count),
	}
	for _, e := range element.All() {
		if n := census.Of(e); n > 0 {
			rec.Census[e.String()] = n
		}
	}
	return rec
}

// Writer appends JSON lines to a zstd stream. It is safe for concurrent use;
// the file is created on the first Write.
type Writer struct {
	path string

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// NewWriter returns a writer for path. Parent directories are created on
// demand.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path reports the file the writer appends to.
func (w *Writer) Path() string { return w.path }

// Write encodes v as one JSON line.
func (w *Writer) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.w == nil {
		if err := w.openLocked(); err != nil {
			return err
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Flush pushes buffered lines through the encoder.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return nil
	}
	if err := w.w.Flush(); err != nil {
		return err
	}
	return w.enc.Flush()
}

// Close flushes and closes the stream.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *Writer) openLocked() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 128*1024)
	return nil
}

func (w *Writer) closeLocked() error {
	var errs []error
	if w.w != nil {
		errs = append(errs, w.w.Flush())
	}
	if w.enc != nil {
		errs = append(errs, w.enc.Close())
		w.enc = nil
	}
	if w.f != nil {
		errs = append(errs, w.f.Close())
		w.f = nil
	}
	w.w = nil
	return errors.Join(errs...)
}

// ReadRecords decodes every record in a telemetry file.
func ReadRecords(path string) ([]TickRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open telemetry: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads zstd-compressed JSON lines from r.
func Decode(r io.Reader) ([]TickRecord, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []TickRecord
	jd := json.NewDecoder(dec)
	for {
		var rec TickRecord
		if err := jd.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("decode telemetry line %d: %w", len(out)+1, err)
		}
		out = append(out, rec)
	}
}
