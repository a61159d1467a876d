// Package store wraps the database with owner-scoped task access. Every
// query is filtered by user_id, so a task owned by someone else is
// indistinguishable from one that doesn't exist.
package store

import (
	"context"
	"errors"
	"fmt"

	"taskmind/task-api/internal/model"

	"gorm.io/gorm"
)

// ErrTaskNotFound covers both a missing task and a task owned by another user
var ErrTaskNotFound = errors.New("task not found")

type TaskStore struct {
	db *gorm.DB
}

func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db}
}

type Summary struct {
	TotalTasks int64 `json:"total_tasks"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}

// Create persists the task and its paired agent in one transaction. If the
// agent insert fails the task insert rolls back with it.
func (s *TaskStore) Create(ctx context.Context, userID uint, title string, description, taskType *string) (*model.Task, error) {
	task := &model.Task{
		Title:       title,
		Description: description,
		Status:      model.StatusPending,
		TaskType:    taskType,
		UserID:      userID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}

		desc := "No description provided"
		if description != nil && *description != "" {
			desc = *description
		}

		agent := &model.Agent{
			AgentName: title + " Assistant",
			Purpose:   fmt.Sprintf("Help with task: %s. %s", title, desc),
			TaskID:    task.ID,
		}

		return tx.Create(agent).Error
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskStore) List(ctx context.Context, userID uint, skip, limit int) ([]model.Task, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	var tasks []model.Task
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(skip).
		Limit(limit).
		Find(&tasks).
		Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (s *TaskStore) Get(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		First(&task).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return &task, nil
}

// Update applies only the fields that are present. A nil field leaves the
// stored value untouched.
func (s *TaskStore) Update(ctx context.Context, userID, taskID uint, title, description *string) (*model.Task, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if title != nil {
		updates["title"] = *title
	}
	if description != nil {
		updates["description"] = *description
	}

	if len(updates) == 0 {
		return task, nil
	}

	err = s.db.WithContext(ctx).Model(task).Updates(updates).Error
	if err != nil {
		return nil, err
	}

	if title != nil {
		task.Title = *title
	}
	if description != nil {
		task.Description = description
	}

	return task, nil
}

func (s *TaskStore) UpdateStatus(ctx context.Context, userID, taskID uint, status model.TaskStatus) (*model.Task, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(task).Update("status", status).Error
	if err != nil {
		return nil, err
	}

	task.Status = status
	return task, nil
}

func (s *TaskStore) UpdateType(ctx context.Context, userID, taskID uint, taskType string) (*model.Task, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(task).Update("task_type", taskType).Error
	if err != nil {
		return nil, err
	}

	task.TaskType = &taskType
	return task, nil
}

// Delete removes the task and its agent in one transaction
func (s *TaskStore) Delete(ctx context.Context, userID, taskID uint) error {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(model.Agent{}).Error; err != nil {
			return err
		}

		return tx.Delete(task).Error
	})
}

// AgentForTask loads the task and its paired agent, applying the same
// ownership gate as Get
func (s *TaskStore) AgentForTask(ctx context.Context, userID, taskID uint) (*model.Task, *model.Agent, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, nil, err
	}

	var agent model.Agent
	err = s.db.WithContext(ctx).
		Where("task_id = ?", task.ID).
		First(&agent).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTaskNotFound
		}
		return nil, nil, err
	}

	return task, &agent, nil
}

func (s *TaskStore) Summary(ctx context.Context, userID uint) (*Summary, error) {
	var rows []struct {
		Status model.TaskStatus
		Count  int64
	}

	err := s.db.WithContext(ctx).
		Model(model.Task{}).
		Select("status, count(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	sum := &Summary{}
	for _, r := range rows {
		sum.TotalTasks += r.Count

		switch r.Status {
		case model.StatusPending:
			sum.Pending = r.Count
		case model.StatusInProgress:
			sum.InProgress = r.Count
		case model.StatusCompleted:
			sum.Completed = r.Count
		}
	}

	return sum, nil
}
