// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"log/slog"
	"strconv"
)

type config struct {
	mask     int
	charset  Charset
	parallel bool
	trace    func(Event)
}

func (c *config) emit(s Stage, ev Event) {
	if c.trace != nil {
		ev.Stage = s
		c.trace(ev)
	}
}

// An Option changes how Encode builds a code.
type Option func(*config)

// WithMask forces mask pattern mask instead of choosing the one with
// the lowest penalty.  Encode fails with ErrMask unless mask is in
// the range 0..7.
func WithMask(mask int) Option {
	if mask < 0 {
		mask = -2
	}
	return func(c *config) { c.mask = mask }
}

// WithCharset sets the byte mode charset.  The default is UTF8.
func WithCharset(cs Charset) Option {
	return func(c *config) { c.charset = cs }
}

// WithParallel runs the Reed-Solomon blocks and the mask trials
// concurrently.  The result is the same either way.
func WithParallel(on bool) Option {
	return func(c *config) { c.parallel = on }
}

// WithTrace calls fn as Encode passes each Stage.
func WithTrace(fn func(Event)) Option {
	return func(c *config) { c.trace = fn }
}

// A Stage is a step of Encode reported to the trace function.
type Stage int

const (
	StageEncode    Stage = iota // codewords produced
	StageFunction               // function patterns placed
	StageData                   // codewords placed
	StageMaskTrial              // one mask pattern scored
	StageMask                   // mask pattern committed
)

var stageNames = [...]string{
	StageEncode:    "encode",
	StageFunction:  "function",
	StageData:      "data",
	StageMaskTrial: "mask trial",
	StageMask:      "mask",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "stage(" + strconv.Itoa(int(s)) + ")"
	}
	return stageNames[s]
}

// An Event describes a Stage.  Fields that do not apply to the stage
// are zero, except Mask, which is -1 before mask selection.
type Event struct {
	Stage     Stage
	Version   int
	Level     Level
	Codewords int // StageEncode and later: data and check codewords
	Modules   int // StageFunction: reserved modules; StageData: data modules
	Mask      int // StageMaskTrial, StageMask
	Penalty   int // StageMaskTrial, StageMask
}

// LogValue implements slog.LogValuer.
func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("stage", e.Stage.String()),
		slog.Int("version", e.Version),
		slog.String("level", e.Level.String()),
	}
	switch e.Stage {
	case StageEncode:
		attrs = append(attrs, slog.Int("codewords", e.Codewords))
	case StageFunction, StageData:
		attrs = append(attrs, slog.Int("modules", e.Modules))
	case StageMaskTrial, StageMask:
		attrs = append(attrs, slog.Int("mask", e.Mask), slog.Int("penalty", e.Penalty))
	}
	return slog.GroupValue(attrs...)
}
