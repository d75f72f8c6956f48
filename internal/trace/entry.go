// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package trace

import "time"

// Entry kinds.
const (
	KindStage  = "stage"  // one compiled stage and its cumulative expression
	KindResult = "result" // final outcome of a run
)

// Entry represents a single trace log record.
type Entry struct {
	Seq      uint64    `json:"seq"`
	Time     time.Time `json:"ts"`
	PrevHash string    `json:"prev_hash"`
	Kind     string    `json:"kind"`
	Pipeline string    `json:"pipeline"`          // raw pipeline source
	Stage    int       `json:"stage,omitempty"`   // 1-based stage index
	Op       string    `json:"op,omitempty"`      // operator name
	Operand  string    `json:"operand,omitempty"` // verbatim operand text
	Expr     string    `json:"expr,omitempty"`    // expression composed so far
	Result   string    `json:"result,omitempty"`  // formatted final value
	Error    string    `json:"error,omitempty"`   // error message if the run failed
	Duration float64   `json:"duration_ms,omitempty"`
	Hash     string    `json:"hash"` // SHA-256 of this entry (with hash field empty)
}
