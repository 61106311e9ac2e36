package webui

import (
	"sync"
	"time"

	"github.com/SarthakNawali/ai-word-generator/internal/document"
	"github.com/SarthakNawali/ai-word-generator/internal/recovery"
)

const (
	jobRunning = "running"
	jobDone    = "done"
	jobFailed  = "failed"
)

type progressEvent struct {
	Stage   string `json:"stage"`
	Section int    `json:"section"`
	Message string `json:"message"`
}

// job is the in-memory state of one generation run. Nothing about a job is
// persisted; the rendered artifact is the only durable output.
type job struct {
	ID      string
	Created time.Time

	mu       sync.Mutex
	Status   string
	Err      string
	Warnings []recovery.Warning
	Artifact *document.Artifact
	history  []progressEvent
	subs     []chan progressEvent
	settled  bool
}

func (j *job) addWarning(w recovery.Warning) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Warnings = append(j.Warnings, w)
}

// publish records the event and fans it out to live subscribers. Slow
// subscribers miss events rather than stalling the run.
func (j *job) publish(ev progressEvent) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.history = append(j.history, ev)
	for _, ch := range j.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// subscribe returns the event history so far and a channel for what follows.
// The channel is closed once the job settles.
func (j *job) subscribe() ([]progressEvent, chan progressEvent) {
	j.mu.Lock()
	defer j.mu.Unlock()
	history := make([]progressEvent, len(j.history))
	copy(history, j.history)

	ch := make(chan progressEvent, 16)
	if j.settled {
		close(ch)
		return history, ch
	}
	j.subs = append(j.subs, ch)
	return history, ch
}

func (j *job) unsubscribe(ch chan progressEvent) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i, sub := range j.subs {
		if sub == ch {
			j.subs = append(j.subs[:i], j.subs[i+1:]...)
			return
		}
	}
}

func (j *job) closeSubscribersLocked() {
	j.settled = true
	for _, ch := range j.subs {
		close(ch)
	}
	j.subs = nil
}
