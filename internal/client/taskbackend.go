package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/cristianlarad/ARCADE-MAX/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const listCacheTTL = 1 * time.Minute

// APIError is the structured failure a remote mutation resolves with.
type APIError struct {
	Message    string `json:"message"`
	HTTPStatus int    `json:"http_status"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.HTTPStatus, e.Message)
}

// TaskBackendClient talks to the task/project backend. List fetches go
// through a short-TTL Redis cache so repeated board reads don't hammer the
// backend; mutations invalidate the cache on success.
type TaskBackendClient struct {
	baseURL string
	rdb     *redis.Client
}

func NewTaskBackendClient(baseURL string, rdb *redis.Client) *TaskBackendClient {
	return &TaskBackendClient{baseURL: baseURL, rdb: rdb}
}

// FetchTasks retrieves the task list, optionally filtered by status code.
func (c *TaskBackendClient) FetchTasks(ctx context.Context, status string) ([]entity.Task, error) {
	url := fmt.Sprintf("%s/tasks", c.baseURL)
	if status != "" {
		url = fmt.Sprintf("%s/tasks?status=%s", c.baseURL, status)
	}

	var tasks []entity.Task
	if err := c.getCached(ctx, taskCacheKey(status), url, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// FetchDeletedTasks retrieves the recycle bin contents.
func (c *TaskBackendClient) FetchDeletedTasks(ctx context.Context) ([]entity.Task, error) {
	var tasks []entity.Task
	url := fmt.Sprintf("%s/task/bin-task", c.baseURL)
	if err := c.getCached(ctx, "tasks:bin", url, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *TaskBackendClient) FetchProjects(ctx context.Context) ([]entity.Project, error) {
	var projects []entity.Project
	url := fmt.Sprintf("%s/projects", c.baseURL)
	if err := c.getCached(ctx, "projects", url, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *TaskBackendClient) DeleteTask(ctx context.Context, id string) error {
	if err := c.post(ctx, fmt.Sprintf("%s/tasks/%s", c.baseURL, id)); err != nil {
		return err
	}
	c.InvalidateTasks(ctx)
	return nil
}

func (c *TaskBackendClient) DeleteProject(ctx context.Context, id string) error {
	if err := c.post(ctx, fmt.Sprintf("%s/projects/%s", c.baseURL, id)); err != nil {
		return err
	}
	c.invalidate(ctx, "projects")
	return nil
}

func (c *TaskBackendClient) CompleteTask(ctx context.Context, id string) error {
	if err := c.post(ctx, fmt.Sprintf("%s/tasks/%s/completed", c.baseURL, id)); err != nil {
		return err
	}
	c.InvalidateTasks(ctx)
	return nil
}

// ClearDeletedTasks empties the recycle bin in one call.
func (c *TaskBackendClient) ClearDeletedTasks(ctx context.Context) error {
	if err := c.post(ctx, fmt.Sprintf("%s/task/bin-task/delete-all", c.baseURL)); err != nil {
		return err
	}
	c.InvalidateTasks(ctx)
	return nil
}

// InvalidateTasks drops every cached task list so the next fetch reseeds
// from the backend.
func (c *TaskBackendClient) InvalidateTasks(ctx context.Context) {
	keys := []string{taskCacheKey(""), "tasks:bin"}
	for code := entity.CodePending; code <= entity.CodeDeleted; code++ {
		keys = append(keys, taskCacheKey(fmt.Sprintf("%d", code)))
	}
	c.invalidate(ctx, keys...)
}

func (c *TaskBackendClient) getCached(ctx context.Context, cacheKey, url string, out interface{}) error {
	cached, err := c.rdb.Get(ctx, cacheKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		logger.Error().Err(err).Msgf("Error reading %s from cache", cacheKey)
	}
	if cached != "" {
		if err := json.Unmarshal([]byte(cached), out); err == nil {
			return nil
		}
		logger.Warn().Msgf("Discarding unreadable cache entry %s", cacheKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Message: "failed to fetch " + cacheKey, HTTPStatus: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return err
	}

	payload, err := json.Marshal(out)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, cacheKey, payload, listCacheTTL).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error caching %s", cacheKey)
	}

	return nil
}

func (c *TaskBackendClient) post(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{HTTPStatus: resp.StatusCode, Message: "mutation rejected"}
		var body struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr == nil && body.Message != "" {
			apiErr.Message = body.Message
		}
		return apiErr
	}

	return nil
}

func (c *TaskBackendClient) invalidate(ctx context.Context, keys ...string) {
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Error().Err(err).Msg("Error invalidating list cache")
	}
}

func taskCacheKey(status string) string {
	if status == "" {
		return "tasks:all"
	}
	return "tasks:" + status
}
