package progress

import (
	"sync"

	"go.uber.org/zap"
)

// Log reports progress as structured log lines. It is the tracker of
// choice when stderr is not a terminal.
type Log struct {
	logger *zap.Logger

	mu    sync.Mutex
	label string
	total int
	done  int
}

// NewLog returns a tracker that logs through logger.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Start(label string, total int) {
	l.mu.Lock()
	l.label = label
	l.total = total
	l.done = 0
	l.mu.Unlock()
	l.logger.Info("batch started", zap.String("batch", label), zap.Int("total", total))
}

func (l *Log) Increment() {
	l.mu.Lock()
	l.done++
	label, total, done := l.label, l.total, l.done
	l.mu.Unlock()
	l.logger.Debug("batch progress", zap.String("batch", label), zap.Int("done", done), zap.Int("total", total))
}

func (l *Log) Finish() {
	l.mu.Lock()
	label, total, done := l.label, l.total, l.done
	l.mu.Unlock()
	l.logger.Info("batch finished", zap.String("batch", label), zap.Int("done", done), zap.Int("total", total))
}
