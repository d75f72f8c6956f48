// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

// Package trace writes an append-only, hash-chained JSONL log of
// compiled pipelines: one entry per stage with the expression composed
// so far, then a result entry when the pipeline runs.
package trace

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/marcelocantos/spigot/internal/stage"
)

const genesisInput = "spigot-genesis"

// Writer appends trace entries to a JSONL file.
type Writer struct {
	mu       sync.Mutex
	path     string
	seq      uint64
	prevHash string
}

// NewWriter opens or creates a trace log at the given path.
// It reads the last entry to resume the hash chain.
func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create trace dir: %w", err)
	}

	w := &Writer{
		path:     path,
		prevHash: genesisHash(),
	}

	if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
		lines := splitLines(data)
		if len(lines) > 0 {
			var last Entry
			if err := json.Unmarshal(lines[len(lines)-1], &last); err == nil {
				w.seq = last.Seq
				w.prevHash = last.Hash
			}
		}
	}

	return w, nil
}

// Stage records one compiled stage and the cumulative expression after it.
func (w *Writer) Stage(pipeline string, index int, st stage.Stage, expr string) error {
	return w.append(Entry{
		Kind:     KindStage,
		Pipeline: pipeline,
		Stage:    index,
		Op:       st.Op.String(),
		Operand:  st.Operand,
		Expr:     expr,
	})
}

// Result records the outcome of running a pipeline.
func (w *Writer) Result(pipeline, result, errMsg string, duration time.Duration) error {
	return w.append(Entry{
		Kind:     KindResult,
		Pipeline: pipeline,
		Result:   result,
		Error:    errMsg,
		Duration: float64(duration.Microseconds()) / 1000.0,
	})
}

func (w *Writer) append(entry Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.seq++
	entry.Seq = w.seq
	entry.Time = time.Now().UTC()
	entry.PrevHash = w.prevHash

	entry.Hash = computeHash(entry)
	w.prevHash = entry.Hash

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal trace entry: %w", err)
	}
	data = append(data, '\n')

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("open trace log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write trace entry: %w", err)
	}
	return nil
}

// Path returns the trace log file path.
func (w *Writer) Path() string {
	return w.path
}

func genesisHash() string {
	h := sha256.Sum256([]byte(genesisInput))
	return fmt.Sprintf("%x", h)
}

func computeHash(e Entry) string {
	e.Hash = "" // hash is computed with this field empty
	data, _ := json.Marshal(e)
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h)
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			if i > start {
				lines = append(lines, data[start:i])
			}
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}
