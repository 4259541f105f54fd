package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiltersSetEmptyRemovesKey(t *testing.T) {
	filters := Filters{}.Set(FilterStatus, StatusCompleted)
	assert.Equal(t, Filters{FilterStatus: StatusCompleted}, filters)

	filters = filters.Set(FilterStatus, "")
	assert.Equal(t, Filters{}, filters)
	assert.True(t, filters.IsEmpty())

	filters = filters.Set(FilterStatus, "   ")
	assert.Empty(t, filters)
}

func TestFiltersSetDoesNotMutateReceiver(t *testing.T) {
	original := Filters{FilterStatus: StatusPending}
	_ = original.Set(FilterStatus, "")
	assert.Equal(t, StatusPending, original.Get(FilterStatus))
}

func TestTaskViewsListDefaultsToEmpty(t *testing.T) {
	views := TaskViews{AllTasks: []Task{{ID: 1}}}
	assert.NotNil(t, views.List(TabAssignedToMe))
	assert.Empty(t, views.List(TabAssignedToMe))
	assert.Len(t, views.List(TabAllTasks), 1)
	assert.Empty(t, views.List(Tab("unknown")))
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats([]Task{
		{Status: StatusPending},
		{Status: StatusCompleted},
		{Status: StatusPending},
	})
	assert.Equal(t, Stats{Total: 3, Pending: 2, Completed: 1}, stats)
}

func TestTimestampAcceptsNaiveDatetimes(t *testing.T) {
	var task Task
	payload := `{"id":1,"status":"Completed","created_at":"2024-03-01T10:15:30.123456","completed_at":"2024-03-02T08:00:00Z"}`
	require.NoError(t, json.Unmarshal([]byte(payload), &task))

	assert.Equal(t, time.Date(2024, 3, 1, 10, 15, 30, 123456000, time.UTC), task.CreatedAt.Time)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC), task.CompletedTime())
}

func TestTimestampNullCompletedAt(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"status":"Pending","completed_at":null}`), &task))
	assert.Nil(t, task.CompletedAt)
	assert.True(t, task.CompletedTime().IsZero())
}
