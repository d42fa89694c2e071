package advisor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/gquyenhsb/agriplan-backend/internal/planner"
	"github.com/gquyenhsb/agriplan-backend/internal/projects/domain"
)

var (
	// ErrAlreadyInitialized rejects a second initial round for a project.
	ErrAlreadyInitialized = errors.New("project already has an initial plan")
	// ErrNotInitialized rejects update rounds before the first plan exists.
	ErrNotInitialized = errors.New("project has no plan yet")
	// ErrNotReady rejects plan requests before location and weather are set.
	ErrNotReady = errors.New("location and weather must be set before planning")
)

// Store is the project persistence surface the advisor needs.
type Store interface {
	Get(ctx context.Context, projectID string) (*domain.Project, error)
	LoadState(ctx context.Context, projectID string) (*domain.ProjectState, bool, error)
	SaveState(ctx context.Context, projectID string, state *domain.ProjectState) error
}

// Generator produces free text from a composed prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service runs plan rounds: it composes the prompt, calls the generator,
// carves the care schedule out of the response and folds the result into the
// project's persisted state.
type Service struct {
	store Store
	gen   Generator
	nowFn func() time.Time
}

func NewService(store Store, gen Generator) *Service {
	return &Service{store: store, gen: gen, nowFn: time.Now}
}

// RoundResult is what a successful plan round hands back to the caller.
type RoundResult struct {
	Result     string               `json:"result"`
	Tasks      []planner.TaskRecord `json:"tasks"`
	TaskStatus planner.StatusMap    `json:"taskStatus"`
}

// RunInitialRound generates the first cultivation plan for a project. The
// project must have weather and a city persisted already; the generated
// response replaces the task list and seeds the status map.
//
// A generation failure is returned to the caller and the round is not
// recorded in history.
func (s *Service) RunInitialRound(ctx context.Context, projectID, fruitType string) (*RoundResult, error) {
	fruitType = strings.TrimSpace(fruitType)
	if fruitType == "" {
		return nil, fmt.Errorf("fruit type required")
	}

	project, err := s.store.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	state, found, err := s.store.LoadState(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if !found {
		state = domain.NewProjectState()
	}
	if state.ProjectInitialized {
		return nil, ErrAlreadyInitialized
	}
	if state.City == "" || state.Weather == nil {
		return nil, ErrNotReady
	}

	now := s.nowFn()
	prompt := planner.BuildInitialPrompt(planner.InitialPromptParams{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		FruitType:   fruitType,
		City:        state.City,
		Date:        planner.FormatDate(now),
		Temperature: state.Weather.Temperature,
		Description: state.Weather.Description,
		Humidity:    state.Weather.Humidity,
		WindSpeed:   state.Weather.WindSpeed,
	})
	full := fmt.Sprintf("Dự án %s (ID: %s): %s", project.Name, project.ID, prompt)

	text, err := s.gen.Generate(ctx, full)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	state.FruitType = fruitType
	state.Result = text
	state.ProjectInitialized = true
	state.History = append(state.History, domain.HistoryEntry{
		Date:   planner.FormatDate(now),
		Prompt: full,
		Result: text,
	})
	s.applyExtraction(projectID, state, text, planner.KindInitial)

	s.saveState(ctx, projectID, state)
	return &RoundResult{Result: text, Tasks: state.Tasks, TaskStatus: state.TaskStatus}, nil
}

// RunUpdateRound generates a revised plan from the previous round's result
// and the current completion state.
func (s *Service) RunUpdateRound(ctx context.Context, projectID string) (*RoundResult, error) {
	project, err := s.store.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	state, found, err := s.store.LoadState(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if !found || !state.ProjectInitialized || len(state.History) == 0 {
		return nil, ErrNotInitialized
	}

	completed, pending := splitByStatus(state.TaskStatus)
	now := s.nowFn()
	last := state.History[len(state.History)-1]
	prompt := planner.BuildUpdatePrompt(planner.UpdatePromptParams{
		Date:       planner.FormatDate(now),
		LastResult: last.Result,
		Completed:  completed,
		Pending:    pending,
	})
	full := fmt.Sprintf("Dự án %s (ID: %s): %s", project.Name, project.ID, prompt)

	text, err := s.gen.Generate(ctx, full)
	if err != nil {
		return nil, fmt.Errorf("generate update: %w", err)
	}

	state.Result = text
	state.History = append(state.History, domain.HistoryEntry{
		Date:   planner.FormatDate(now),
		Prompt: full,
		Result: text,
	})
	s.applyExtraction(projectID, state, text, planner.KindUpdate)

	s.saveState(ctx, projectID, state)
	return &RoundResult{Result: text, Tasks: state.Tasks, TaskStatus: state.TaskStatus}, nil
}

// CompleteTask marks a tracked task as done. Unknown keys are a no-op; the
// returned flag reports whether anything changed.
func (s *Service) CompleteTask(ctx context.Context, projectID, taskKey string) (bool, error) {
	state, found, err := s.store.LoadState(ctx, projectID)
	if err != nil {
		return false, fmt.Errorf("load state: %w", err)
	}
	if !found {
		return false, nil
	}

	if !state.TaskStatus.MarkDone(taskKey) {
		return false, nil
	}
	if err := s.store.SaveState(ctx, projectID, state); err != nil {
		return false, fmt.Errorf("save state: %w", err)
	}
	return true, nil
}

// Tasks returns the current task list and status map for a project.
func (s *Service) Tasks(ctx context.Context, projectID string) ([]planner.TaskRecord, planner.StatusMap, error) {
	state, found, err := s.store.LoadState(ctx, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("load state: %w", err)
	}
	if !found {
		return []planner.TaskRecord{}, planner.StatusMap{}, nil
	}
	return state.Tasks, state.TaskStatus, nil
}

// applyExtraction replaces the task list with the rows carved out of text and
// rebuilds the status map, carrying completion forward for surviving keys.
// A response without the expected section frame yields an empty task list.
func (s *Service) applyExtraction(projectID string, state *domain.ProjectState, text string, kind planner.PromptKind) {
	section, err := planner.ExtractSection(text, kind)
	if err != nil {
		log.Printf("project %s: %v, task list will be empty this round", projectID, err)
	}

	tasks := planner.ParseRows(section)
	state.TaskStatus = planner.MergeStatus(state.TaskStatus, tasks)
	state.Tasks = tasks
}

// saveState persists optimistically: the round already happened and the
// caller gets its result either way, so a storage failure is only logged.
func (s *Service) saveState(ctx context.Context, projectID string, state *domain.ProjectState) {
	if err := s.store.SaveState(ctx, projectID, state); err != nil {
		log.Printf("save state for project %s failed: %v", projectID, err)
	}
}

// splitByStatus partitions tracked task keys into completed and pending,
// sorted for a stable prompt text.
func splitByStatus(status planner.StatusMap) (completed, pending []string) {
	for key, done := range status {
		if done {
			completed = append(completed, key)
		} else {
			pending = append(pending, key)
		}
	}
	sort.Strings(completed)
	sort.Strings(pending)
	return completed, pending
}
