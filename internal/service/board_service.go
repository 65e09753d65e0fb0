package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianlarad/ARCADE-MAX/internal/entity"
	"github.com/cristianlarad/ARCADE-MAX/internal/repository"
)

var (
	ErrAlreadyDeleted = errors.New("task is already in the recycle bin")
	ErrNotAssigned    = errors.New("only assigned tasks can be completed")
)

// TaskBackend is the remote owner of tasks and projects. The board service
// treats it as the single source of truth: local board state changes only
// after the backend confirms a mutation.
type TaskBackend interface {
	FetchTasks(ctx context.Context, status string) ([]entity.Task, error)
	FetchDeletedTasks(ctx context.Context) ([]entity.Task, error)
	FetchProjects(ctx context.Context) ([]entity.Project, error)
	DeleteTask(ctx context.Context, id string) error
	DeleteProject(ctx context.Context, id string) error
	CompleteTask(ctx context.Context, id string) error
	ClearDeletedTasks(ctx context.Context) error
}

// BoardService drives the user-reorderable task and project boards. The
// ordering is presentation-local: seeded from the backend, rearranged freely
// by drag gestures, and never written back. Deletions are the opposite:
// strictly confirm-then-apply, never optimistic.
type BoardService struct {
	boards   *repository.BoardStore
	backend  TaskBackend
	notifier Notifier
}

func NewBoardService(boards *repository.BoardStore, backend TaskBackend, notifier Notifier) *BoardService {
	return &BoardService{boards: boards, backend: backend, notifier: notifier}
}

// TaskBoard returns the session's task board for a status filter, seeding it
// from the backend on first read or when a refresh is forced. A reseed
// overwrites whatever local reordering the session had.
func (s *BoardService) TaskBoard(ctx context.Context, session, filter string, refresh bool) ([]entity.Task, error) {
	board := taskBoardName(filter)
	if refresh || !s.boards.Seeded(session, board) {
		tasks, err := s.fetchTasks(ctx, filter)
		if err != nil {
			logger.Error().Err(err).Msgf("Error fetching tasks for board %s", board)
			return nil, err
		}

		items := make([]entity.Orderable, len(tasks))
		for i, task := range tasks {
			items[i] = task
		}
		s.boards.Seed(session, board, items)
	}

	return tasksOf(s.boards.Items(session, board)), nil
}

// ProjectBoard is TaskBoard for the project list.
func (s *BoardService) ProjectBoard(ctx context.Context, session string, refresh bool) ([]entity.Project, error) {
	if refresh || !s.boards.Seeded(session, projectBoard) {
		projects, err := s.backend.FetchProjects(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Error fetching projects")
			return nil, err
		}

		items := make([]entity.Orderable, len(projects))
		for i, project := range projects {
			items[i] = project
		}
		s.boards.Seed(session, projectBoard, items)
	}

	items := s.boards.Items(session, projectBoard)
	projects := make([]entity.Project, 0, len(items))
	for _, item := range items {
		if project, ok := item.(entity.Project); ok {
			projects = append(projects, project)
		}
	}
	return projects, nil
}

// ReorderTasks applies a drag-and-drop permutation to the local board. No
// network round-trip: the backend has no order field, so the new order lives
// and dies with the session.
func (s *BoardService) ReorderTasks(session, filter string, ids []string) error {
	return s.boards.Reorder(session, taskBoardName(filter), ids)
}

func (s *BoardService) ReorderProjects(session string, ids []string) error {
	return s.boards.Reorder(session, projectBoard, ids)
}

// DeleteTask sends a task to the backend's recycle bin and, only on
// confirmed success, removes it from every seeded board. On failure the
// boards keep the task and the user gets an error toast; there is no retry.
func (s *BoardService) DeleteTask(ctx context.Context, session, filter, id string) error {
	if task, ok := s.findTask(session, taskBoardName(filter), id); ok && !entity.CanDelete(task.Status) {
		return ErrAlreadyDeleted
	}

	if err := s.backend.DeleteTask(ctx, id); err != nil {
		logger.Error().Err(err).Msgf("Error deleting task %s", id)
		s.notifier.Error(session, "Error al eliminar")
		return err
	}

	s.boards.RemoveEverywhere(id)
	s.notifier.Success(session, "Tarea eliminada exitosamente")
	return nil
}

func (s *BoardService) DeleteProject(ctx context.Context, session, id string) error {
	if err := s.backend.DeleteProject(ctx, id); err != nil {
		logger.Error().Err(err).Msgf("Error deleting project %s", id)
		s.notifier.Error(session, "Error al eliminar")
		return err
	}

	s.boards.RemoveEverywhere(id)
	s.notifier.Success(session, "Proyecto eliminado exitosamente")
	return nil
}

// CompleteTask marks an assigned task as realized, backend first. The local
// copy keeps its board position and only flips status after confirmation.
func (s *BoardService) CompleteTask(ctx context.Context, session, filter, id string) error {
	board := taskBoardName(filter)
	task, ok := s.findTask(session, board, id)
	if ok && !entity.CanComplete(task.Status) {
		return ErrNotAssigned
	}

	if err := s.backend.CompleteTask(ctx, id); err != nil {
		logger.Error().Err(err).Msgf("Error completing task %s", id)
		s.notifier.Error(session, "Error al completar la tarea")
		return err
	}

	if ok {
		task.Status = entity.CodeRealized
		task.Completed = true
		s.boards.Replace(session, board, task)
	}
	s.notifier.Success(session, "Tarea completada exitosamente")
	return nil
}

// ClearRecycleBin empties the backend bin in one call, then forgets the
// session's bin board so the next read reseeds it.
func (s *BoardService) ClearRecycleBin(ctx context.Context, session string) error {
	if err := s.backend.ClearDeletedTasks(ctx); err != nil {
		logger.Error().Err(err).Msg("Error clearing recycle bin")
		s.notifier.Error(session, "Error al eliminar")
		return err
	}

	s.boards.Drop(session, taskBoardName(binFilter))
	s.notifier.Success(session, "Papelera vaciada exitosamente")
	return nil
}

func (s *BoardService) fetchTasks(ctx context.Context, filter string) ([]entity.Task, error) {
	if filter == binFilter {
		return s.backend.FetchDeletedTasks(ctx)
	}
	return s.backend.FetchTasks(ctx, filter)
}

func (s *BoardService) findTask(session, board, id string) (entity.Task, bool) {
	for _, item := range s.boards.Items(session, board) {
		if task, ok := item.(entity.Task); ok && task.ID == id {
			return task, true
		}
	}
	return entity.Task{}, false
}

const (
	projectBoard = "projects"
	binFilter    = "bin"
)

func taskBoardName(filter string) string {
	if filter == "" {
		return "tasks"
	}
	return fmt.Sprintf("tasks:%s", filter)
}

func tasksOf(items []entity.Orderable) []entity.Task {
	tasks := make([]entity.Task, 0, len(items))
	for _, item := range items {
		if task, ok := item.(entity.Task); ok {
			tasks = append(tasks, task)
		}
	}
	return tasks
}
