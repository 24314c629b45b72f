package task_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/models/task"
)

func TestFilterMatches(t *testing.T) {
	target := &task.Task{
		Title:       "Купить продукты",
		Description: "Молоко и хлеб",
		Status:      task.StatusPending,
		Priority:    task.PriorityHigh,
	}

	tests := []struct {
		name     string
		filter   task.Filter
		expected bool
	}{
		{"пустой фильтр пропускает всё", task.Filter{}, true},
		{"значение all не ограничивает", task.Filter{Status: "all", Priority: "all"}, true},
		{"совпадение статуса", task.Filter{Status: "pending"}, true},
		{"несовпадение статуса", task.Filter{Status: "completed"}, false},
		{"совпадение приоритета", task.Filter{Priority: "high"}, true},
		{"несовпадение приоритета", task.Filter{Priority: "low"}, false},
		{"поиск по названию без регистра", task.Filter{Search: "КУПИТЬ"}, true},
		{"поиск по описанию", task.Filter{Search: "хлеб"}, true},
		{"поиск без совпадений", task.Filter{Search: "отчёт"}, false},
		{"условия объединяются через И", task.Filter{Status: "pending", Priority: "low"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Matches(target))
		})
	}
}

func TestSummarize(t *testing.T) {
	tasks := []*task.Task{
		{ID: "1", Status: task.StatusPending},
		{ID: "2", Status: task.StatusCompleted},
		{ID: "3", Status: task.StatusInProgress},
		{ID: "4", Status: task.StatusPending},
	}

	s := task.Summarize(tasks)
	assert.Equal(t, task.Summary{All: 4, Pending: 2, InProgress: 1, Completed: 1}, s)

	// сумма по статусам всегда сходится с общим числом
	assert.Equal(t, s.All, s.Pending+s.InProgress+s.Completed)
}

func TestAnalyticsFromTasks(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	overdue := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	tasks := []*task.Task{
		{ID: "1", Status: task.StatusPending, Priority: task.PriorityLow, DueDate: &overdue},
		{ID: "2", Status: task.StatusCompleted, Priority: task.PriorityHigh, DueDate: &overdue},
		{ID: "3", Status: task.StatusInProgress, Priority: task.PriorityMedium, DueDate: &future},
	}

	a := task.AnalyticsFromTasks(tasks, now)
	assert.Equal(t, 3, a.TotalTasks)
	assert.Equal(t, task.StatusBreakdown{Pending: 1, InProgress: 1, Completed: 1}, a.StatusBreakdown)
	assert.Equal(t, task.PriorityBreakdown{Low: 1, Medium: 1, High: 1}, a.PriorityBreakdown)
	// просроченной считается только незавершённая задача
	assert.Equal(t, 1, a.OverdueTasks)
	assert.Equal(t, 33, a.CompletionRate)
}

func TestAnalyticsFromTasksEmpty(t *testing.T) {
	a := task.AnalyticsFromTasks(nil, time.Now())
	assert.Equal(t, 0, a.TotalTasks)
	assert.Equal(t, 0, a.CompletionRate)
}

func TestClone(t *testing.T) {
	due := time.Now().Add(time.Hour)
	original := &task.Task{
		ID:       "1",
		Title:    "Оригинал",
		DueDate:  &due,
		Subtasks: []task.Subtask{{Title: "a"}},
	}

	clone := original.Clone()
	clone.Subtasks[0].Completed = true
	*clone.DueDate = clone.DueDate.Add(time.Hour)

	assert.False(t, original.Subtasks[0].Completed, "копия должна быть глубокой")
	assert.Equal(t, due, *original.DueDate)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "write-the-report", task.Slugify("Write  The Report"))
	assert.Equal(t, "", task.Slugify("   "))
}

func TestTaskOptions(t *testing.T) {
	t.Run("правки применяются по очереди", func(t *testing.T) {
		target := &task.Task{Title: "Было", Status: task.StatusPending}

		for _, opt := range []task.TaskOption{
			task.WithTitle("Стало"),
			task.WithPriority(task.PriorityHigh),
			task.WithSubtaskAdded("шаг 1"),
			task.WithSubtaskAdded("шаг 2"),
			task.WithSubtaskCompleted(0, true),
		} {
			opt(target)
		}

		assert.Equal(t, "Стало", target.Title)
		assert.Equal(t, task.PriorityHigh, target.Priority)
		assert.Len(t, target.Subtasks, 2)
		assert.True(t, target.Subtasks[0].Completed)
		assert.False(t, target.Subtasks[1].Completed)
	})

	t.Run("удаление подзадачи смещает адресацию хвоста", func(t *testing.T) {
		target := &task.Task{Subtasks: []task.Subtask{
			{Title: "a"},
			{Title: "b"},
			{Title: "c"},
		}}

		task.WithSubtaskRemoved(1)(target)

		assert.Len(t, target.Subtasks, 2)
		assert.Equal(t, "c", target.Subtasks[1].Title)
	})

	t.Run("удаление за пределами диапазона игнорируется", func(t *testing.T) {
		target := &task.Task{Subtasks: []task.Subtask{{Title: "a"}}}

		task.WithSubtaskRemoved(5)(target)
		task.WithSubtaskCompleted(-1, true)(target)

		assert.Len(t, target.Subtasks, 1)
		assert.False(t, target.Subtasks[0].Completed)
	})
}
