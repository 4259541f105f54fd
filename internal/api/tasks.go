package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Joseda-hg/lazytracker/internal/model"
)

const taskViewPath = "/tasks/my-tasks-view"

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.doJSON(ctx, http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// TaskView fetches the three categorized lists for userID, narrowed by filters.
func (c *Client) TaskView(ctx context.Context, userID int64, filters model.Filters) (model.TaskViews, error) {
	query := url.Values{}
	query.Set("user_id", strconv.FormatInt(userID, 10))
	for key, value := range filters {
		if value != "" {
			query.Set(key, value)
		}
	}

	var views model.TaskViews
	if err := c.doJSON(ctx, http.MethodGet, taskViewPath, query, nil, &views); err != nil {
		return model.TaskViews{}, err
	}
	return views.Normalize(), nil
}

func (c *Client) GetTask(ctx context.Context, taskID int64) (model.Task, error) {
	var task model.Task
	err := c.doJSON(ctx, http.MethodGet, taskPath(taskID), nil, nil, &task)
	return task, err
}

func (c *Client) CreateTask(ctx context.Context, input model.TaskInput) (model.Task, error) {
	var task model.Task
	err := c.doJSON(ctx, http.MethodPost, "/tasks", nil, input, &task)
	return task, err
}

func (c *Client) UpdateTask(ctx context.Context, taskID int64, update model.TaskUpdate) (model.Task, error) {
	var task model.Task
	err := c.doJSON(ctx, http.MethodPut, taskPath(taskID), nil, update, &task)
	return task, err
}

func (c *Client) DeleteTask(ctx context.Context, taskID int64) error {
	return c.doJSON(ctx, http.MethodDelete, taskPath(taskID), nil, nil, nil)
}

func (c *Client) CompleteTask(ctx context.Context, taskID int64) (model.Task, error) {
	var task model.Task
	err := c.doJSON(ctx, http.MethodPost, taskPath(taskID)+"/complete", nil, nil, &task)
	return task, err
}

func (c *Client) ReopenTask(ctx context.Context, taskID int64) (model.Task, error) {
	var task model.Task
	err := c.doJSON(ctx, http.MethodPost, taskPath(taskID)+"/reopen", nil, nil, &task)
	return task, err
}

func taskPath(taskID int64) string {
	return fmt.Sprintf("/tasks/%d", taskID)
}
