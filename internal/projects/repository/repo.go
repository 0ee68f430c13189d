package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studioline/intake-backend/internal/kvstore"
	"github.com/studioline/intake-backend/internal/logging"
	"github.com/studioline/intake-backend/internal/projects/domain"
)

const (
	projectKeyPrefix = "project:"      // Key prefix for project records: project:{id}
	projectIndexKey  = "project:index" // JSON array of project ids, newest first
)

// ProjectRepository stores project records in a key-value store and keeps
// the project index in step with them.
//
// The store has no cross-key transactions. Every mutation is a sequence of
// single-key writes, and index updates are a read-modify-write that can lose
// a concurrent update (last write wins). List tolerates the resulting
// divergence and RepairIndex removes it.
type ProjectRepository struct {
	store   kvstore.Store
	now     func() time.Time
	newID   func() string
	metrics *Metrics
}

// Option configures a ProjectRepository.
type Option func(*ProjectRepository)

// WithClock overrides the time source used for submittedAt and quotedAt.
func WithClock(now func() time.Time) Option {
	return func(r *ProjectRepository) {
		r.now = now
	}
}

// WithIDGenerator overrides project id generation.
func WithIDGenerator(gen func() string) Option {
	return func(r *ProjectRepository) {
		r.newID = gen
	}
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(store kvstore.Store, opts ...Option) *ProjectRepository {
	r := &ProjectRepository{
		store:   store,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
		metrics: &Metrics{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Metrics returns the live counters of this repository.
func (r *ProjectRepository) Metrics() *Metrics {
	return r.metrics
}

// Create validates the submission, persists a new pending project and
// prepends its id to the index. It returns the new id.
func (r *ProjectRepository) Create(ctx context.Context, req domain.SubmitRequest) (string, error) {
	const op = "project.create"
	logger := logging.FromContext(ctx)

	if err := req.Validate(); err != nil {
		return "", err
	}

	project := &domain.Project{
		ID:          r.newID(),
		Name:        req.Name,
		Email:       req.Email,
		Company:     req.Company,
		ServiceType: req.ServiceType,
		Budget:      req.Budget,
		Description: req.Description,
		Status:      domain.StatusPending,
		SubmittedAt: r.now().UTC(),
	}

	if err := r.putProject(ctx, project); err != nil {
		logger.LogErrorf(op, "project_id=%s step=record error=%v", project.ID, err)
		return "", err
	}

	index, err := r.readIndex(ctx)
	if err != nil {
		logger.LogErrorf(op, "project_id=%s step=index_read record_written=true error=%v", project.ID, err)
		return "", err
	}

	index = append([]string{project.ID}, index...)
	if err := r.writeIndex(ctx, index); err != nil {
		logger.LogErrorf(op, "project_id=%s step=index_write record_written=true error=%v", project.ID, err)
		return "", err
	}

	r.metrics.recordCreate()
	logger.LogInfof(op, "project_id=%s email=%s", project.ID, project.Email)
	return project.ID, nil
}

// List returns every indexed project, newest first. Index ids without a
// record are skipped.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	const op = "project.list"
	logger := logging.FromContext(ctx)

	index, err := r.readIndex(ctx)
	if err != nil {
		logger.LogError(op, err)
		return nil, err
	}

	out := make([]domain.Project, 0, len(index))
	if len(index) == 0 {
		return out, nil
	}

	keys := make([]string, len(index))
	for i, id := range index {
		keys[i] = projectKey(id)
	}

	values, err := r.store.MGet(ctx, keys)
	if err != nil {
		err = r.storeErr("mget", projectIndexKey, err)
		logger.LogError(op, err)
		return nil, err
	}

	seen := make(map[string]struct{}, len(index))
	for i, data := range values {
		id := index[i]
		if data == nil {
			r.metrics.recordDanglingSkipped()
			logger.LogWarnf(op, "project_id=%s indexed without record, skipping", id)
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		var p domain.Project
		if err := json.Unmarshal(data, &p); err != nil {
			logger.LogErrorf(op, "project_id=%s undecodable record, skipping error=%v", id, err)
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

// Get loads a single project by id without consulting the index.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	p, err := r.getProject(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrProjectNotFound) {
		logging.FromContext(ctx).LogErrorf("project.get", "project_id=%s error=%v", id, err)
	}
	return p, err
}

// ApplyQuote sets the quote amount and status on an existing project and
// stamps quotedAt. Any quote status may replace any other.
func (r *ProjectRepository) ApplyQuote(ctx context.Context, id string, req domain.QuoteRequest) (*domain.Project, error) {
	const op = "project.quote"
	logger := logging.FromContext(ctx)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	project, err := r.getProject(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrProjectNotFound) {
			logger.LogErrorf(op, "project_id=%s step=load error=%v", id, err)
		}
		return nil, err
	}

	amount := req.Amount
	quotedAt := r.now().UTC()
	project.Quote = &amount
	project.Status = req.Status
	project.QuotedAt = &quotedAt

	if err := r.putProject(ctx, project); err != nil {
		logger.LogErrorf(op, "project_id=%s step=record error=%v", id, err)
		return nil, err
	}

	r.metrics.recordQuote()
	logger.LogInfof(op, "project_id=%s quote=%.2f status=%s", id, amount, req.Status)
	return project, nil
}

// Delete removes the record and then drops its id from the index. Deleting
// an unknown id succeeds.
//
// The record goes first: a failure between the two writes leaves a dangling
// index id, which List skips, rather than a live record missing from the index.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	const op = "project.delete"
	logger := logging.FromContext(ctx)

	if !validID(id) {
		return nil
	}

	if err := r.store.Delete(ctx, projectKey(id)); err != nil {
		err = r.storeErr("delete", projectKey(id), err)
		logger.LogErrorf(op, "project_id=%s step=record error=%v", id, err)
		return err
	}

	index, err := r.readIndex(ctx)
	if err != nil {
		logger.LogErrorf(op, "project_id=%s step=index_read record_deleted=true error=%v", id, err)
		return err
	}

	filtered := make([]string, 0, len(index))
	for _, existing := range index {
		if existing != id {
			filtered = append(filtered, existing)
		}
	}

	if len(filtered) != len(index) {
		if err := r.writeIndex(ctx, filtered); err != nil {
			logger.LogErrorf(op, "project_id=%s step=index_write record_deleted=true error=%v", id, err)
			return err
		}
	}

	r.metrics.recordDelete()
	logger.LogInfof(op, "project_id=%s", id)
	return nil
}

func (r *ProjectRepository) getProject(ctx context.Context, id string) (*domain.Project, error) {
	if !validID(id) {
		return nil, domain.ErrProjectNotFound
	}

	key := projectKey(id)
	data, err := r.store.Get(ctx, key)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, r.storeErr("get", key, err)
	}

	var p domain.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, r.storeErr("decode", key, err)
	}
	return &p, nil
}

func (r *ProjectRepository) putProject(ctx context.Context, p *domain.Project) error {
	key := projectKey(p.ID)

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return r.storeErr("set", key, err)
	}
	return nil
}

// readIndex returns the current index; a missing index key is an empty index.
func (r *ProjectRepository) readIndex(ctx context.Context) ([]string, error) {
	data, err := r.store.Get(ctx, projectIndexKey)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, r.storeErr("get", projectIndexKey, err)
	}

	var index []string
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, r.storeErr("decode", projectIndexKey, err)
	}
	return index, nil
}

func (r *ProjectRepository) writeIndex(ctx context.Context, index []string) error {
	if index == nil {
		index = []string{}
	}
	data, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal project index: %w", err)
	}
	if err := r.store.Set(ctx, projectIndexKey, data); err != nil {
		return r.storeErr("set", projectIndexKey, err)
	}
	return nil
}

func (r *ProjectRepository) storeErr(op, key string, err error) error {
	r.metrics.recordStoreError()
	return &domain.StoreError{Op: op, Key: key, Err: err}
}

// Helper methods for key generation
func projectKey(id string) string {
	return projectKeyPrefix + id
}

// validID rejects ids that would address the index key or the bare prefix.
func validID(id string) bool {
	return id != "" && projectKey(id) != projectIndexKey
}
