// Package progress reports fan-out completion, one unit per finished
// topic. Implementations range from an interactive terminal bar to
// structured log lines to nothing at all, so the pipeline stays agnostic
// about where progress ends up.
package progress

// Tracker observes one batch of topic fetches. Start sizes the batch,
// Increment records one finished unit whether it succeeded or not, and
// Finish releases the display. Implementations must be safe for
// concurrent Increment calls.
type Tracker interface {
	Start(label string, total int)
	Increment()
	Finish()
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Start(string, int) {}
func (Nop) Increment()        {}
func (Nop) Finish()           {}
