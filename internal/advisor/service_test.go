package advisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gquyenhsb/agriplan-backend/internal/planner"
	"github.com/gquyenhsb/agriplan-backend/internal/projects/domain"
)

type fakeStore struct {
	project *domain.Project
	state   *domain.ProjectState
	saved   []*domain.ProjectState
	saveErr error
}

func (f *fakeStore) Get(ctx context.Context, projectID string) (*domain.Project, error) {
	if f.project == nil || f.project.ID != projectID {
		return nil, domain.ErrNotFound
	}
	return f.project, nil
}

func (f *fakeStore) LoadState(ctx context.Context, projectID string) (*domain.ProjectState, bool, error) {
	if f.state == nil {
		return nil, false, nil
	}
	return f.state, true, nil
}

func (f *fakeStore) SaveState(ctx context.Context, projectID string, state *domain.ProjectState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.state = state
	f.saved = append(f.saved, state)
	return nil
}

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

const planResponse = `## Dự án Vườn nhà (ID: agri-1): Trồng cây Xoài tại Hà Nội

•3. Giám sát và chăm sóc (Bắt đầu từ 10/05/2025):

| 10/05/2025 | 08:00 | Tưới nước | 2L |
| 11/05/2025 | 09:00 | Bón phân | NPK 100g |
•Lưu ý: theo dõi

•4. Cập nhật từ bạn:

chưa có`

const updateResponse = `+ Những điều cần làm trong hôm nay:
Tưới nước
+ Kế hoạch cho những ngày sau:
| 11/05/2025 | 09:00 | Bón phân | NPK 100g |
| 12/05/2025 | 07:00 | Tỉa cành | - |
•Lưu ý: không`

func readyState() *domain.ProjectState {
	s := domain.NewProjectState()
	s.City = "Hà Nội"
	s.Weather = &domain.WeatherInfo{
		City:        "Hà Nội",
		Temperature: 31.5,
		Description: "trời nắng",
		Humidity:    70,
		WindSpeed:   2.4,
	}
	return s
}

func newTestService(store Store, gen Generator) *Service {
	svc := NewService(store, gen)
	svc.nowFn = func() time.Time {
		return time.Date(2025, time.May, 10, 8, 0, 0, 0, time.Local)
	}
	return svc
}

func TestRunInitialRound(t *testing.T) {
	store := &fakeStore{
		project: &domain.Project{ID: "agri-1", Name: "Vườn nhà"},
		state:   readyState(),
	}
	gen := &fakeGenerator{response: planResponse}
	svc := newTestService(store, gen)

	res, err := svc.RunInitialRound(context.Background(), "agri-1", "Xoài")
	require.NoError(t, err)

	assert.Equal(t, planResponse, res.Result)
	require.Len(t, res.Tasks, 2)
	assert.Equal(t, planner.TaskRecord{Date: "10/05/2025", Time: "08:00", Activity: "Tưới nước"}, res.Tasks[0])
	assert.False(t, res.TaskStatus["10/05/2025 - Tưới nước"])
	assert.False(t, res.TaskStatus["11/05/2025 - Bón phân"])

	// One save with the full round folded in.
	require.Len(t, store.saved, 1)
	saved := store.saved[0]
	assert.True(t, saved.ProjectInitialized)
	assert.Equal(t, "Xoài", saved.FruitType)
	require.Len(t, saved.History, 1)
	assert.Equal(t, "10/05/2025", saved.History[0].Date)
	assert.Equal(t, planResponse, saved.History[0].Result)

	// The composed prompt embeds project, crop and weather.
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Dự án Vườn nhà (ID: agri-1)")
	assert.Contains(t, gen.prompts[0], "cách để trồng cây Xoài")
	assert.Contains(t, gen.prompts[0], "Nhiệt độ: 31.5°C")
}

func TestRunInitialRound_Validation(t *testing.T) {
	t.Run("unknown project", func(t *testing.T) {
		svc := newTestService(&fakeStore{}, &fakeGenerator{})
		_, err := svc.RunInitialRound(context.Background(), "agri-9", "Xoài")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("missing fruit type", func(t *testing.T) {
		svc := newTestService(&fakeStore{}, &fakeGenerator{})
		_, err := svc.RunInitialRound(context.Background(), "agri-1", "  ")
		assert.Error(t, err)
	})

	t.Run("weather not set", func(t *testing.T) {
		store := &fakeStore{
			project: &domain.Project{ID: "agri-1", Name: "Vườn nhà"},
			state:   domain.NewProjectState(),
		}
		svc := newTestService(store, &fakeGenerator{})
		_, err := svc.RunInitialRound(context.Background(), "agri-1", "Xoài")
		assert.ErrorIs(t, err, ErrNotReady)
	})

	t.Run("already initialized", func(t *testing.T) {
		state := readyState()
		state.ProjectInitialized = true
		store := &fakeStore{
			project: &domain.Project{ID: "agri-1", Name: "Vườn nhà"},
			state:   state,
		}
		svc := newTestService(store, &fakeGenerator{})
		_, err := svc.RunInitialRound(context.Background(), "agri-1", "Xoài")
		assert.ErrorIs(t, err, ErrAlreadyInitialized)
	})
}

func TestRunInitialRound_GenerationFailureNotRecorded(t *testing.T) {
	store := &fakeStore{
		project: &domain.Project{ID: "agri-1", Name: "Vườn nhà"},
		state:   readyState(),
	}
	gen := &fakeGenerator{err: errors.New("upstream down")}
	svc := newTestService(store, gen)

	_, err := svc.RunInitialRound(context.Background(), "agri-1", "Xoài")
	require.Error(t, err)

	// The failed round leaves no trace: nothing saved, no history entry.
	assert.Empty(t, store.saved)
	assert.Empty(t, store.state.History)
	assert.False(t, store.state.ProjectInitialized)
}

func TestRunUpdateRound(t *testing.T) {
	state := readyState()
	state.ProjectInitialized = true
	state.FruitType = "Xoài"
	state.History = []domain.HistoryEntry{
		{Date: "10/05/2025", Prompt: "cách để trồng cây Xoài", Result: planResponse},
	}
	state.Tasks = planner.ParseRows("| 10/05/2025 | 08:00 | Tưới nước | 2L |\n| 11/05/2025 | 09:00 | Bón phân | NPK 100g |")
	state.TaskStatus = planner.StatusMap{
		"10/05/2025 - Tưới nước": true,
		"11/05/2025 - Bón phân":  false,
	}

	store := &fakeStore{
		project: &domain.Project{ID: "agri-1", Name: "Vườn nhà"},
		state:   state,
	}
	gen := &fakeGenerator{response: updateResponse}
	svc := newTestService(store, gen)

	res, err := svc.RunUpdateRound(context.Background(), "agri-1")
	require.NoError(t, err)

	// The update prompt reports progress and embeds the previous plan.
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Cập nhật tiến độ")
	assert.Contains(t, gen.prompts[0], "tôi đã làm 10/05/2025 - Tưới nước")
	assert.Contains(t, gen.prompts[0], "chưa làm 11/05/2025 - Bón phân")
	assert.Contains(t, gen.prompts[0], planResponse)

	// Round 2 replaces the task list; completion carries forward for the
	// surviving key, dropped keys disappear, new keys start incomplete.
	require.Len(t, res.Tasks, 2)
	assert.False(t, res.TaskStatus["11/05/2025 - Bón phân"])
	assert.False(t, res.TaskStatus["12/05/2025 - Tỉa cành"])
	_, tracked := res.TaskStatus["10/05/2025 - Tưới nước"]
	assert.False(t, tracked)

	require.Len(t, store.state.History, 2)
	assert.Equal(t, updateResponse, store.state.History[1].Result)
}

func TestRunUpdateRound_StatusCarryForward(t *testing.T) {
	state := readyState()
	state.ProjectInitialized = true
	state.History = []domain.HistoryEntry{
		{Date: "10/05/2025", Prompt: "cách để trồng cây Xoài", Result: planResponse},
	}
	state.TaskStatus = planner.StatusMap{"11/05/2025 - Bón phân": true}

	store := &fakeStore{
		project: &domain.Project{ID: "agri-1", Name: "Vườn nhà"},
		state:   state,
	}
	svc := newTestService(store, &fakeGenerator{response: updateResponse})

	res, err := svc.RunUpdateRound(context.Background(), "agri-1")
	require.NoError(t, err)

	// "Bón phân" appears in both rounds and stays completed.
	assert.True(t, res.TaskStatus["11/05/2025 - Bón phân"])
}

func TestRunUpdateRound_RequiresInitialPlan(t *testing.T) {
	store := &fakeStore{
		project: &domain.Project{ID: "agri-1", Name: "Vườn nhà"},
		state:   readyState(),
	}
	svc := newTestService(store, &fakeGenerator{})

	_, err := svc.RunUpdateRound(context.Background(), "agri-1")
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestRunRound_MissingSectionYieldsEmptyTasks(t *testing.T) {
	store := &fakeStore{
		project: &domain.Project{ID: "agri-1", Name: "Vườn nhà"},
		state:   readyState(),
	}
	gen := &fakeGenerator{response: "xin lỗi, tôi không thể trả lời theo khung"}
	svc := newTestService(store, gen)

	res, err := svc.RunInitialRound(context.Background(), "agri-1", "Xoài")
	require.NoError(t, err)

	assert.Empty(t, res.Tasks)
	assert.Empty(t, res.TaskStatus)
	// The round itself is still recorded.
	require.Len(t, store.state.History, 1)
}

func TestCompleteTask(t *testing.T) {
	state := readyState()
	state.TaskStatus = planner.StatusMap{"10/05/2025 - Tưới nước": false}
	store := &fakeStore{
		project: &domain.Project{ID: "agri-1", Name: "Vườn nhà"},
		state:   state,
	}
	svc := newTestService(store, &fakeGenerator{})

	changed, err := svc.CompleteTask(context.Background(), "agri-1", "10/05/2025 - Tưới nước")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, store.state.TaskStatus.Done("10/05/2025 - Tưới nước"))
	require.Len(t, store.saved, 1)

	// Unknown key: no flip, no save.
	changed, err = svc.CompleteTask(context.Background(), "agri-1", "không tồn tại")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, store.saved, 1)
}

func TestTasks_NoStateYet(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeGenerator{})

	tasks, status, err := svc.Tasks(context.Background(), "agri-1")
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Empty(t, status)
}
