package task

// DeriveStatus вычисляет итоговый статус после правки подзадач.
// Правки подзадач имеют приоритет над статусом, выбранным вручную:
// добавление/удаление переводит задачу в in_progress, а если все
// подзадачи выполнены - в completed. Если подзадач не было и нет,
// принудительного перехода не происходит (выбор пользователя остаётся).
func DeriveStatus(prev, next []Subtask, chosen Status) Status {
	if len(prev) == 0 && len(next) == 0 {
		return chosen
	}
	if len(next) == 0 {
		// все подзадачи удалены
		return StatusInProgress
	}
	if len(next) != len(prev) || toggled(prev, next) {
		if allCompleted(next) {
			return StatusCompleted
		}
		return StatusInProgress
	}
	return chosen
}

// StatusForSubtasks - статус, который должна иметь задача с подзадачами.
// Для задачи без подзадач производного статуса нет.
func StatusForSubtasks(subtasks []Subtask) (Status, bool) {
	if len(subtasks) == 0 {
		return "", false
	}
	if allCompleted(subtasks) {
		return StatusCompleted, true
	}
	return StatusInProgress, true
}

func allCompleted(subtasks []Subtask) bool {
	for _, s := range subtasks {
		if !s.Completed {
			return false
		}
	}
	return true
}

func toggled(prev, next []Subtask) bool {
	for i := range next {
		if next[i].Completed != prev[i].Completed {
			return true
		}
	}
	return false
}
