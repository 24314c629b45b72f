package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskboard/internal/models/task"
)

// Client - шлюз к REST API задач. Без повторов: неудачная мутация
// сразу возвращается вызывающему, политика отката - на его стороне.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: NewTransport(nil),
		},
	}
}

func (c *Client) CreateTask(ctx context.Context, draft *task.Task) (*task.Task, error) {
	var created task.Task
	err := c.do(ctx, http.MethodPost, "/tasks", nil, draft, &created, "Не удалось создать задачу")
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*task.Task, error) {
	var t task.Task
	err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, nil, &t, "Задача не найдена")
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) ListTasks(ctx context.Context, userID string, f task.Filter) ([]*task.Task, error) {
	query := url.Values{}
	// значение "all" на сервер не отправляется
	if f.Status != "" && f.Status != task.FilterAll {
		query.Set("status", f.Status)
	}
	if f.Priority != "" && f.Priority != task.FilterAll {
		query.Set("priority", f.Priority)
	}
	if f.Search != "" {
		query.Set("search", f.Search)
	}

	var tasks []*task.Task
	path := "/users/" + url.PathEscape(userID) + "/tasks"
	err := c.do(ctx, http.MethodGet, path, query, nil, &tasks, "Не удалось получить задачи пользователя")
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, t *task.Task) (*task.Task, error) {
	var updated task.Task
	err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), nil, t, &updated, "Не удалось обновить задачу")
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) UpdateSubtask(ctx context.Context, id string, index int, completed bool) (*task.Task, error) {
	body := map[string]bool{"completed": completed}
	path := fmt.Sprintf("/tasks/%s/subtasks/%d", url.PathEscape(id), index)

	var updated task.Task
	err := c.do(ctx, http.MethodPatch, path, nil, body, &updated, "Не удалось обновить статус подзадачи")
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil, nil, "Не удалось удалить задачу")
}

func (c *Client) GetAnalytics(ctx context.Context, userID string) (*task.Analytics, error) {
	var a task.Analytics
	path := "/users/" + url.PathEscape(userID) + "/analytics"
	err := c.do(ctx, http.MethodGet, path, nil, nil, &a, "Не удалось получить аналитику")
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// успешные ответы приходят в конверте {"data": ...},
// ошибки несут поле "message"
type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, fallback string) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("сериализация тела запроса: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("создание запроса: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errorBody
		message := fallback
		if decodeErr := json.NewDecoder(resp.Body).Decode(&eb); decodeErr == nil && eb.Message != "" {
			message = eb.Message
		}
		return &ServerError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}

	var envelope dataEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &TransportError{Err: fmt.Errorf("разбор ответа: %w", err)}
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &TransportError{Err: fmt.Errorf("разбор ответа: %w", err)}
	}
	return nil
}
