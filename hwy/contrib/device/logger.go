// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package device

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with the field names used by the device runtime.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that writes human-readable text to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a Logger that writes JSON to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// LogSubmit logs a task entering the queue.
func (l *Logger) LogSubmit(ctx context.Context, name string, kind TaskKind, deps int) {
	l.DebugContext(ctx, "task submitted",
		"task", name,
		"kind", string(kind),
		"deps", deps,
	)
}

// LogTask logs a finished task.
func (l *Logger) LogTask(ctx context.Context, s TaskStats) {
	if s.Err != nil {
		l.WarnContext(ctx, "task failed",
			"task", s.Name,
			"kind", string(s.Kind),
			"error", s.Err,
		)
		return
	}
	l.DebugContext(ctx, "task completed",
		"task", s.Name,
		"kind", string(s.Kind),
		"groups", s.Range.Groups,
		"group_size", s.Range.GroupSize,
		"queued", s.Queued,
		"run", s.Run,
	)
}
