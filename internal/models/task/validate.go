package task

import (
	"fmt"
	"time"
	"unicode/utf8"
)

const maxTitleLen = 100
const maxDescriptionLen = 1000
const maxCategoryLen = 50
const maxSubtaskLen = 200

// ValidateDraft проверяет черновик перед созданием.
// Лимиты соответствуют форме создания задачи на сервере.
func ValidateDraft(t *Task, now time.Time) error {
	verr := newValidationError()

	if t.Title == "" {
		verr.add("title", "название обязательно")
	} else if utf8.RuneCountInString(t.Title) > maxTitleLen {
		verr.add("title", fmt.Sprintf("название не длиннее %d символов", maxTitleLen))
	}

	if t.Description == "" {
		verr.add("description", "описание обязательно")
	} else if utf8.RuneCountInString(t.Description) > maxDescriptionLen {
		verr.add("description", fmt.Sprintf("описание не длиннее %d символов", maxDescriptionLen))
	}

	switch t.Status {
	case StatusPending, StatusInProgress, StatusCompleted:
	default:
		verr.add("status", "неизвестный статус")
	}

	switch t.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		verr.add("priority", "неизвестный приоритет")
	}

	if utf8.RuneCountInString(t.Category) > maxCategoryLen {
		verr.add("category", fmt.Sprintf("категория не длиннее %d символов", maxCategoryLen))
	}

	if t.DueDate != nil {
		// срок не раньше сегодняшнего дня, время суток не учитывается
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if t.DueDate.Before(today) {
			verr.add("dueDate", "срок не может быть раньше сегодняшнего дня")
		}
	}

	for i, s := range t.Subtasks {
		if s.Title == "" {
			verr.add(fmt.Sprintf("subtasks[%d]", i), "подзадача не может быть пустой")
		} else if utf8.RuneCountInString(s.Title) > maxSubtaskLen {
			verr.add(fmt.Sprintf("subtasks[%d]", i), fmt.Sprintf("подзадача не длиннее %d символов", maxSubtaskLen))
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
