package notify

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/gquyenhsb/agriplan-backend/internal/planner"
	"github.com/gquyenhsb/agriplan-backend/internal/projects/domain"
)

// Notification is one due task of one project, recomputed every cycle and
// never persisted.
type Notification struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Activity    string `json:"activity"`
	Time        string `json:"time"`
	Date        string `json:"date"`
}

// ProjectSource is the read-only project view the aggregator polls. The
// aggregator never writes project state back.
type ProjectSource interface {
	List(ctx context.Context) ([]domain.Project, error)
	LoadState(ctx context.Context, projectID string) (*domain.ProjectState, bool, error)
}

// Aggregator walks every project on a timer, reruns the extraction pipeline
// on each project's active plan and collects the tasks that are due now into
// a flat feed.
type Aggregator struct {
	source ProjectSource
	nowFn  func() time.Time

	inFlight atomic.Bool

	mu       sync.Mutex
	feed     []Notification
	seen     map[string]struct{} // projectID + "|" + taskKey, reset at local midnight
	seenDate string
}

func NewAggregator(source ProjectSource) *Aggregator {
	return &Aggregator{
		source: source,
		nowFn:  time.Now,
		seen:   make(map[string]struct{}),
	}
}

// Refresh runs one aggregation cycle and swaps the feed. Cycles never
// overlap: if the previous one is still resolving (a hung load), the new
// tick is skipped. A single project's load failure is logged and skipped;
// it never aborts the batch.
func (a *Aggregator) Refresh(ctx context.Context) {
	if !a.inFlight.CompareAndSwap(false, true) {
		log.Println("notification cycle still running, skipping tick")
		return
	}
	defer a.inFlight.Store(false)

	cycleID := uuid.NewString()
	now := a.nowFn()
	seen := a.seenSnapshot(planner.FormatDate(now))

	projects, err := a.source.List(ctx)
	if err != nil {
		log.Printf("notification cycle %s: list projects: %v", cycleID, err)
		return
	}

	var (
		feed    []Notification
		newSeen []string
	)
	for _, p := range projects {
		state, found, err := a.source.LoadState(ctx, p.ID)
		if err != nil {
			log.Printf("notification cycle %s: load project %s: %v", cycleID, p.ID, err)
			continue
		}
		if !found {
			continue
		}

		for _, entry := range activeEntries(state.History) {
			kind, ok := planner.ClassifyPrompt(entry.Prompt)
			if !ok {
				continue
			}
			section, err := planner.ExtractSection(entry.Result, kind)
			if err != nil {
				continue
			}

			due := planner.EvaluateDue(now, planner.ParseRows(section), state.TaskStatus)
			for _, t := range due {
				key := p.ID + "|" + t.Key()
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				newSeen = append(newSeen, key)
				feed = append(feed, Notification{
					ProjectID:   p.ID,
					ProjectName: p.Name,
					Activity:    t.Activity,
					Time:        t.Time,
					Date:        t.Date,
				})
			}
		}
	}

	a.commit(feed, newSeen)
	log.Printf("notification cycle %s: %d project(s), %d new notification(s)", cycleID, len(projects), len(feed))
}

// Feed returns the notifications of the most recent completed cycle.
func (a *Aggregator) Feed() []Notification {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Notification, len(a.feed))
	copy(out, a.feed)
	return out
}

// seenSnapshot copies the dedup set for use outside the lock, resetting it
// when the local date rolled over since the previous cycle.
func (a *Aggregator) seenSnapshot(today string) map[string]struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.seenDate != today {
		a.seen = make(map[string]struct{})
		a.seenDate = today
	}

	out := make(map[string]struct{}, len(a.seen))
	for k := range a.seen {
		out[k] = struct{}{}
	}
	return out
}

func (a *Aggregator) commit(feed []Notification, newSeen []string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, k := range newSeen {
		a.seen[k] = struct{}{}
	}
	a.feed = feed
}

// activeEntries picks each project's active plan: the most recent history
// entry of each prompt kind, returned in history order. Older entries carry
// superseded schedules and are not rescanned.
func activeEntries(history []domain.HistoryEntry) []domain.HistoryEntry {
	lastInitial, lastUpdate := -1, -1
	for i, entry := range history {
		kind, ok := planner.ClassifyPrompt(entry.Prompt)
		if !ok {
			continue
		}
		if kind == planner.KindInitial {
			lastInitial = i
		} else {
			lastUpdate = i
		}
	}

	var out []domain.HistoryEntry
	for _, i := range []int{lastInitial, lastUpdate} {
		if i >= 0 {
			out = append(out, history[i])
		}
	}
	if lastInitial > lastUpdate && lastUpdate >= 0 {
		out[0], out[1] = out[1], out[0]
	}
	return out
}
