package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gquyenhsb/agriplan-backend/internal/projects/domain"
)

// Repo provides persistence for the project catalog and each project's state
// blob. The blob is stored as a single jsonb document, mirroring the shape the
// client works with.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// EnsureSchema creates the projects table if it does not exist yet.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	const q = `
create table if not exists projects (
    project_id text primary key,
    name       text not null default '',
    state      jsonb,
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);
`
	if _, err := r.db.Exec(ctx, q); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Create inserts a new project with a generated public identifier.
func (r *Repo) Create(ctx context.Context, name string) (*domain.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}

	for i := 0; i < 5; i++ {
		projectID, err := NewPublicID("agri")
		if err != nil {
			return nil, err
		}

		const q = `
insert into projects (project_id, name)
values ($1, $2)
returning project_id, name, created_at, updated_at;
`
		var p domain.Project
		err = r.db.QueryRow(ctx, q, projectID, name).
			Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)

		if err == nil {
			return &p, nil
		}

		// unique violation on project_id → retry
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

// List returns all projects, oldest first. The notification aggregator walks
// this list every cycle, so the order is stable across cycles.
func (r *Repo) List(ctx context.Context) ([]domain.Project, error) {
	const q = `
select project_id, name, created_at, updated_at
from projects
order by created_at asc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns a single project by its public identifier.
func (r *Repo) Get(ctx context.Context, projectID string) (*domain.Project, error) {
	const q = `
select project_id, name, created_at, updated_at
from projects
where project_id = $1;
`
	var p domain.Project
	err := r.db.QueryRow(ctx, q, projectID).
		Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// SaveState upserts the full state blob for a project. A save against an
// unknown project id creates the catalog row, matching the original backend
// where the first save was what created the record.
func (r *Repo) SaveState(ctx context.Context, projectID string, state *domain.ProjectState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	const q = `
insert into projects (project_id, state)
values ($1, $2)
on conflict (project_id)
do update set state = excluded.state, updated_at = now();
`
	if _, err := r.db.Exec(ctx, q, projectID, blob); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// LoadState returns a project's state blob. Absence of the project or of any
// saved state is a non-error "no data" result (found = false).
func (r *Repo) LoadState(ctx context.Context, projectID string) (*domain.ProjectState, bool, error) {
	const q = `
select state
from projects
where project_id = $1;
`
	var blob []byte
	err := r.db.QueryRow(ctx, q, projectID).Scan(&blob)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if len(blob) == 0 {
		return nil, false, nil
	}

	var state domain.ProjectState
	if err := json.Unmarshal(blob, &state); err != nil {
		return nil, false, fmt.Errorf("unmarshal state: %w", err)
	}
	if state.TaskStatus == nil {
		state.TaskStatus = map[string]bool{}
	}
	return &state, true, nil
}

// Delete removes a project and its state. Reports whether a row was removed.
func (r *Repo) Delete(ctx context.Context, projectID string) (bool, error) {
	const q = `delete from projects where project_id = $1;`
	ct, err := r.db.Exec(ctx, q, projectID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
