package task

import (
	"math"
	"strings"
	"time"
)

type Task struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug,omitempty"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	Category    string     `json:"category,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	UserID      string     `json:"userId"`
	Subtasks    []Subtask  `json:"subtasks,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	IsDeleted   bool       `json:"isDeleted,omitempty"`
}

// Subtask адресуется позицией в срезе, стабильного ключа нет
type Subtask struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Status string
type Priority string

const StatusPending Status = "pending"
const StatusInProgress Status = "in_progress"
const StatusCompleted Status = "completed"

const PriorityLow Priority = "low"
const PriorityMedium Priority = "medium"
const PriorityHigh Priority = "high"

// Clone возвращает глубокую копию задачи
func (t *Task) Clone() *Task {
	c := *t
	if t.Subtasks != nil {
		c.Subtasks = make([]Subtask, len(t.Subtasks))
		copy(c.Subtasks, t.Subtasks)
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.UpdatedAt != nil {
		u := *t.UpdatedAt
		c.UpdatedAt = &u
	}
	return &c
}

func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusCompleted
}

func Slugify(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), "-")
}

const FilterAll = "all"

// Filter - критерии активного представления, пустое значение или "all" не ограничивает
type Filter struct {
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	Search   string `json:"search,omitempty"`
}

func (f Filter) Matches(t *Task) bool {
	if f.Status != "" && f.Status != FilterAll && f.Status != string(t.Status) {
		return false
	}
	if f.Priority != "" && f.Priority != FilterAll && f.Priority != string(t.Priority) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}
	return true
}

type Summary struct {
	All        int `json:"all"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

func Summarize(tasks []*Task) Summary {
	s := Summary{All: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case StatusPending:
			s.Pending++
		case StatusInProgress:
			s.InProgress++
		case StatusCompleted:
			s.Completed++
		}
	}
	return s
}

type StatusBreakdown struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

type PriorityBreakdown struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

type Analytics struct {
	TotalTasks        int               `json:"totalTasks"`
	StatusBreakdown   StatusBreakdown   `json:"statusBreakdown"`
	PriorityBreakdown PriorityBreakdown `json:"priorityBreakdown"`
	OverdueTasks      int               `json:"overdueTasks"`
	CompletionRate    int               `json:"completionRate"`
}

// AnalyticsFromTasks считает аналитику по живой коллекции,
// серверная агрегация остаётся первичным источником
func AnalyticsFromTasks(tasks []*Task, now time.Time) Analytics {
	a := Analytics{TotalTasks: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case StatusPending:
			a.StatusBreakdown.Pending++
		case StatusInProgress:
			a.StatusBreakdown.InProgress++
		case StatusCompleted:
			a.StatusBreakdown.Completed++
		}
		switch t.Priority {
		case PriorityLow:
			a.PriorityBreakdown.Low++
		case PriorityMedium:
			a.PriorityBreakdown.Medium++
		case PriorityHigh:
			a.PriorityBreakdown.High++
		}
		if t.IsOverdue(now) {
			a.OverdueTasks++
		}
	}
	if a.TotalTasks > 0 {
		a.CompletionRate = int(math.Round(float64(a.StatusBreakdown.Completed) / float64(a.TotalTasks) * 100))
	}
	return a
}
