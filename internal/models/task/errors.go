package task

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError - локальная ошибка валидации черновика,
// до сети не доходит, ошибки собираются по полям
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "ошибка валидации"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "ошибка валидации: " + strings.Join(parts, "; ")
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) add(field, reason string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = reason
	}
}
