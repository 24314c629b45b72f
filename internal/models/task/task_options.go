package task

import "time"

// TaskOption - точечная правка задачи, применяется к копии перед отправкой
type TaskOption func(*Task)

func WithTitle(title string) TaskOption {
	return func(task *Task) {
		task.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(task *Task) {
		task.Description = description
	}
}

func WithStatus(status Status) TaskOption {
	return func(task *Task) {
		task.Status = status
	}
}

func WithPriority(priority Priority) TaskOption {
	return func(task *Task) {
		task.Priority = priority
	}
}

func WithCategory(category string) TaskOption {
	return func(task *Task) {
		task.Category = category
	}
}

func WithDueDate(dueDate time.Time) TaskOption {
	return func(task *Task) {
		if dueDate.IsZero() {
			task.DueDate = nil
			return
		}
		task.DueDate = &dueDate
	}
}

func WithSubtasks(subtasks []Subtask) TaskOption {
	return func(task *Task) {
		task.Subtasks = make([]Subtask, len(subtasks))
		copy(task.Subtasks, subtasks)
	}
}

func WithSubtaskAdded(title string) TaskOption {
	return func(task *Task) {
		task.Subtasks = append(task.Subtasks, Subtask{Title: title})
	}
}

// WithSubtaskRemoved удаляет подзадачу по позиции,
// адресация всех последующих подзадач смещается
func WithSubtaskRemoved(index int) TaskOption {
	return func(task *Task) {
		if index < 0 || index >= len(task.Subtasks) {
			return
		}
		task.Subtasks = append(task.Subtasks[:index:index], task.Subtasks[index+1:]...)
	}
}

func WithSubtaskCompleted(index int, completed bool) TaskOption {
	return func(task *Task) {
		if index < 0 || index >= len(task.Subtasks) {
			return
		}
		task.Subtasks[index].Completed = completed
	}
}
