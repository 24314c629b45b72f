package reconciler

import "taskboard/internal/models/task"

// Snapshot - снимок коллекции только для чтения.
// Сводка считается по всей коллекции, а не по отфильтрованной части.
type Snapshot struct {
	Tasks   []*task.Task
	Summary task.Summary
}

// Project - чистая проекция: упорядоченные копии задач под фильтр
// плюс сводные счётчики. Состояние не меняет.
func (r *Reconciler) Project(f task.Filter) Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*task.Task, 0, len(r.order))
	matched := make([]*task.Task, 0, len(r.order))
	for _, id := range r.order {
		t := r.tasks[id]
		all = append(all, t)
		if f.Matches(t) {
			matched = append(matched, t.Clone())
		}
	}

	return Snapshot{
		Tasks:   matched,
		Summary: task.Summarize(all),
	}
}
