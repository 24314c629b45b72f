package task_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/models/task"
)

// TestDeriveStatus тестирует производный статус при правках подзадач
func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		prev     []task.Subtask
		next     []task.Subtask
		chosen   task.Status
		expected task.Status
	}{
		{
			name:     "без подзадач до и после - статус пользователя остаётся",
			prev:     nil,
			next:     nil,
			chosen:   task.StatusCompleted,
			expected: task.StatusCompleted,
		},
		{
			name:     "добавление первой подзадачи переводит в in_progress",
			prev:     nil,
			next:     []task.Subtask{{Title: "x"}},
			chosen:   task.StatusPending,
			expected: task.StatusInProgress,
		},
		{
			name: "добавление подзадачи к завершённой задаче переводит в in_progress",
			prev: []task.Subtask{{Title: "a", Completed: true}},
			next: []task.Subtask{
				{Title: "a", Completed: true},
				{Title: "b"},
			},
			chosen:   task.StatusCompleted,
			expected: task.StatusInProgress,
		},
		{
			name: "добавление выполненной подзадачи к выполненным даёт completed",
			prev: []task.Subtask{{Title: "a", Completed: true}},
			next: []task.Subtask{
				{Title: "a", Completed: true},
				{Title: "b", Completed: true},
			},
			chosen:   task.StatusPending,
			expected: task.StatusCompleted,
		},
		{
			name: "удаление подзадачи переводит в in_progress",
			prev: []task.Subtask{
				{Title: "a"},
				{Title: "b"},
			},
			next:     []task.Subtask{{Title: "a"}},
			chosen:   task.StatusPending,
			expected: task.StatusInProgress,
		},
		{
			name: "удаление всех подзадач переводит в in_progress",
			prev: []task.Subtask{
				{Title: "a", Completed: true},
			},
			next:     nil,
			chosen:   task.StatusCompleted,
			expected: task.StatusInProgress,
		},
		{
			name: "последняя подзадача выполнена - completed",
			prev: []task.Subtask{
				{Title: "a", Completed: true},
				{Title: "b", Completed: false},
			},
			next: []task.Subtask{
				{Title: "a", Completed: true},
				{Title: "b", Completed: true},
			},
			chosen:   task.StatusInProgress,
			expected: task.StatusCompleted,
		},
		{
			name: "снятие флага с выполненной задачи возвращает in_progress",
			prev: []task.Subtask{
				{Title: "a", Completed: true},
				{Title: "b", Completed: true},
			},
			next: []task.Subtask{
				{Title: "a", Completed: false},
				{Title: "b", Completed: true},
			},
			chosen:   task.StatusCompleted,
			expected: task.StatusInProgress,
		},
		{
			name: "подзадачи не тронуты - ручной статус побеждает",
			prev: []task.Subtask{
				{Title: "a", Completed: true},
				{Title: "b"},
			},
			next: []task.Subtask{
				{Title: "a", Completed: true},
				{Title: "b"},
			},
			chosen:   task.StatusPending,
			expected: task.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := task.DeriveStatus(tt.prev, tt.next, tt.chosen)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestStatusForSubtasks(t *testing.T) {
	t.Run("без подзадач производного статуса нет", func(t *testing.T) {
		_, ok := task.StatusForSubtasks(nil)
		assert.False(t, ok)
	})

	t.Run("все выполнены - completed", func(t *testing.T) {
		status, ok := task.StatusForSubtasks([]task.Subtask{
			{Title: "a", Completed: true},
			{Title: "b", Completed: true},
		})
		assert.True(t, ok)
		assert.Equal(t, task.StatusCompleted, status)
	})

	t.Run("есть невыполненные - in_progress", func(t *testing.T) {
		status, ok := task.StatusForSubtasks([]task.Subtask{
			{Title: "a", Completed: true},
			{Title: "b", Completed: false},
		})
		assert.True(t, ok)
		assert.Equal(t, task.StatusInProgress, status)
	})
}
