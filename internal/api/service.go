package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dori/tasklist/internal/clock"
	"github.com/dori/tasklist/internal/codec"
	"github.com/dori/tasklist/internal/dates"
	"github.com/dori/tasklist/internal/deadline"
	"github.com/dori/tasklist/internal/logging"
	"github.com/dori/tasklist/internal/model"
	"github.com/dori/tasklist/internal/render"
	"github.com/dori/tasklist/internal/store"
)

// Service answers socket actions from one store. Connections are handled
// concurrently, so every store and builder call goes through mu.
type Service struct {
	mu      sync.Mutex
	store   *store.Store
	builder *deadline.Builder
	clock   clock.Clock
	logger  *slog.Logger
	started time.Time
}

// NewService creates a service over s
func NewService(s *store.Store, clk clock.Clock, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{
		store:   s,
		builder: deadline.NewBuilder(s),
		clock:   clk,
		logger:  logger,
		started: clk.Now(),
	}
}

// Register installs every action on srv
func (svc *Service) Register(srv *Server) {
	srv.Handle(ActionAddProject, svc.addProject)
	srv.Handle(ActionAddTask, svc.addTask)
	srv.Handle(ActionMarkDone, svc.markDone)
	srv.Handle(ActionSetDeadline, svc.setDeadline)
	srv.Handle(ActionGetTask, svc.getTask)
	srv.Handle(ActionListProjects, svc.listProjects)
	srv.Handle(ActionToday, svc.today)
	srv.Handle(ActionViewByDeadline, svc.viewByDeadline)
	srv.Handle(ActionStatus, svc.status)
}

func decode(raw []byte, v any) error {
	if err := codec.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

func (svc *Service) addProject(_ context.Context, raw []byte) (any, error) {
	var req addProjectRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("missing required field: name")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if !svc.store.AddProject(req.Name) {
		return nil, errors.New(render.ProjectExists(req.Name))
	}
	svc.logger.Debug("project added", "name", req.Name)
	return nil, nil
}

func (svc *Service) addTask(_ context.Context, raw []byte) (any, error) {
	var req addTaskRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if !svc.store.AddTask(req.Project, req.Description) {
		return nil, errors.New(render.ProjectNotFound(req.Project))
	}
	id := svc.store.LastID()
	svc.logger.Debug("task added", "project", req.Project, "id", id)
	return AddTaskResult{ID: id}, nil
}

func (svc *Service) markDone(_ context.Context, raw []byte) (any, error) {
	var req markDoneRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	done := true
	if req.Done != nil {
		done = *req.Done
	}
	id := idText(req.ID)

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if !svc.store.MarkTaskDoneByText(id, done) {
		return nil, errors.New(render.TaskNotFound(id))
	}
	return nil, nil
}

func (svc *Service) setDeadline(_ context.Context, raw []byte) (any, error) {
	var req setDeadlineRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	id := idText(req.ID)

	svc.mu.Lock()
	defer svc.mu.Unlock()

	when, err := dates.Parse(req.Deadline, svc.clock)
	if err != nil {
		return nil, errors.New(render.InvalidDeadline)
	}
	task, ok := svc.store.FindTaskByID(id)
	if !ok {
		return nil, errors.New(render.TaskNotFound(id))
	}
	svc.store.SetDeadline(task.ID, when)
	return DeadlineResult{ID: task.ID, Deadline: when}, nil
}

func (svc *Service) getTask(_ context.Context, raw []byte) (any, error) {
	var req getTaskRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	id := idText(req.ID)

	svc.mu.Lock()
	defer svc.mu.Unlock()

	task, ok := svc.store.FindTaskByID(id)
	if !ok {
		return nil, errors.New(render.TaskNotFound(id))
	}
	return task, nil
}

func (svc *Service) listProjects(context.Context, []byte) (any, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return nonNil(svc.store.ListProjects()), nil
}

func (svc *Service) today(context.Context, []byte) (any, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return nonNil(svc.store.ListTasksDueToday()), nil
}

func (svc *Service) viewByDeadline(context.Context, []byte) (any, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.builder.ByDeadline(), nil
}

func (svc *Service) status(context.Context, []byte) (any, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	now := svc.clock.Now()
	return Status{
		Projects:      len(svc.store.ListProjects()),
		Tasks:         svc.store.TaskCount(),
		LastID:        svc.store.LastID(),
		Now:           now,
		UptimeSeconds: int64(now.Sub(svc.started) / time.Second),
	}, nil
}

// idText renders a decoded id field the way a user would have typed it
func idText(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

func nonNil(projects []model.Project) []model.Project {
	if projects == nil {
		return []model.Project{}
	}
	return projects
}
