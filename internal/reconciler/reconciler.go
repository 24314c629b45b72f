package reconciler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/logger"
	"taskboard/internal/models/task"
	"taskboard/internal/realtime"
)

// Reconciler владеет коллекцией задач одного пользователя и сводит в неё
// три источника: ответы шлюза, локальные мутации и события реального времени.
// Побеждает последняя запись, подтверждённая сервером. Промежуточные
// состояния наружу не публикуются.
type Reconciler struct {
	gw     TaskGateway
	userID string

	mu      sync.RWMutex
	tasks   map[string]*task.Task
	order   []string
	filter  task.Filter
	loadGen uint64

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New создаётся на старте сессии и сам подписывается на поток событий,
// Close обязателен при завершении сессии
func New(gw TaskGateway, events <-chan realtime.Event, userID string) *Reconciler {
	r := &Reconciler{
		gw:     gw,
		userID: userID,
		tasks:  make(map[string]*task.Task),
		done:   make(chan struct{}),
	}

	if events != nil {
		r.wg.Add(1)
		go r.drain(events)
	}

	return r
}

func (r *Reconciler) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
	})
	r.wg.Wait()
}

// Load заменяет коллекцию результатом запроса по фильтру.
// Из конкурентных загрузок побеждает начатая последней: результат
// с устаревшим номером поколения отбрасывается при возврате.
func (r *Reconciler) Load(ctx context.Context, f task.Filter) error {
	r.mu.Lock()
	r.loadGen++
	gen := r.loadGen
	r.mu.Unlock()

	tasks, err := r.gw.ListTasks(ctx, r.userID, f)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.loadGen {
		logger.Info("Reconciler: Результат устаревшей загрузки отброшен",
			zap.Uint64("generation", gen),
			zap.Uint64("current", r.loadGen))
		return nil
	}

	r.tasks = make(map[string]*task.Task, len(tasks))
	r.order = r.order[:0]
	for _, t := range tasks {
		if t.ID == "" {
			continue
		}
		if _, ok := r.tasks[t.ID]; ok {
			continue
		}
		r.tasks[t.ID] = t.Clone()
		r.order = append(r.order, t.ID)
	}
	r.filter = f

	logger.Info("Reconciler: Коллекция загружена",
		zap.Int("count", len(r.order)),
		zap.Uint64("generation", gen))
	return nil
}

// Create проверяет черновик локально и вставляет только подтверждённую
// сервером задачу. Оптимистичной вставки до подтверждения нет.
func (r *Reconciler) Create(ctx context.Context, draft *task.Task) (*task.Task, error) {
	if err := task.ValidateDraft(draft, time.Now()); err != nil {
		return nil, err
	}

	d := draft.Clone()
	d.UserID = r.userID
	if d.Slug == "" {
		d.Slug = task.Slugify(d.Title)
	}

	created, err := r.gw.CreateTask(ctx, d)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(created)

	return created, nil
}

// Edit применяет правки к копии текущей записи, доводит статус до
// производного и отправляет на сервер полную запись. При ошибке
// коллекция не меняется.
func (r *Reconciler) Edit(ctx context.Context, id string, patches ...task.TaskOption) (*task.Task, error) {
	r.mu.RLock()
	cur, ok := r.tasks[id]
	var prev *task.Task
	if ok {
		prev = cur.Clone()
	}
	r.mu.RUnlock()

	if !ok {
		return nil, notFound(id)
	}

	next := prev.Clone()
	for _, patch := range patches {
		patch(next)
	}
	next.Status = task.DeriveStatus(prev.Subtasks, next.Subtasks, next.Status)

	updated, err := r.gw.UpdateTask(ctx, id, next)
	if err != nil {
		return nil, err
	}

	r.merge(updated)
	return updated, nil
}

// ToggleSubtask - двухшаговая правка: сначала сохраняется флаг одной
// подзадачи, затем, если сервер вернул расходящийся статус родителя,
// уходит корректирующее обновление. Шаги строго последовательны.
func (r *Reconciler) ToggleSubtask(ctx context.Context, id string, index int, completed bool) (*task.Task, error) {
	r.mu.RLock()
	_, ok := r.tasks[id]
	r.mu.RUnlock()

	if !ok {
		return nil, notFound(id)
	}

	updated, err := r.gw.UpdateSubtask(ctx, id, index, completed)
	if err != nil {
		return nil, err
	}

	if want, ok := task.StatusForSubtasks(updated.Subtasks); ok && want != updated.Status {
		fixed := updated.Clone()
		fixed.Status = want
		updated, err = r.gw.UpdateTask(ctx, id, fixed)
		if err != nil {
			// флаг подзадачи уже сохранён, статус догонит следующий Load
			return nil, err
		}
	}

	r.merge(updated)
	return updated, nil
}

// Delete убирает задачу после подтверждения сервера,
// отсутствующий идентификатор - не ошибка
func (r *Reconciler) Delete(ctx context.Context, id string) error {
	if err := r.gw.DeleteTask(ctx, id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.remove(id)
	return nil
}

func (r *Reconciler) Analytics(ctx context.Context) (*task.Analytics, error) {
	return r.gw.GetAnalytics(ctx, r.userID)
}

// LocalAnalytics считает аналитику по живой коллекции без похода на сервер
func (r *Reconciler) LocalAnalytics() task.Analytics {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*task.Task, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.tasks[id])
	}
	return task.AnalyticsFromTasks(all, time.Now())
}

// ActiveFilter - фильтр последней успешной загрузки
func (r *Reconciler) ActiveFilter() task.Filter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter
}

func (r *Reconciler) drain(events <-chan realtime.Event) {
	defer r.wg.Done()

	for {
		select {
		case <-r.done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			r.apply(ev)
		}
	}
}

// apply сводит событие реального времени в коллекцию. События могут
// приходить в любом порядке: update/delete по неизвестному идентификатору
// игнорируются, повторный create не дублирует запись.
func (r *Reconciler) apply(ev realtime.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev.Type {
	case realtime.EventCreated:
		if ev.Task == nil || ev.Task.ID == "" {
			return
		}
		if r.insert(ev.Task) {
			logger.Info("Reconciler: Задача добавлена по событию", zap.String("task_id", ev.Task.ID))
		}
	case realtime.EventUpdated:
		if ev.Task == nil || ev.Task.ID == "" {
			return
		}
		if _, ok := r.tasks[ev.Task.ID]; !ok {
			// update раньше create - игнорируем
			return
		}
		r.tasks[ev.Task.ID] = ev.Task.Clone()
		logger.Info("Reconciler: Задача обновлена по событию", zap.String("task_id", ev.Task.ID))
	case realtime.EventDeleted:
		if r.remove(ev.TaskID) {
			logger.Info("Reconciler: Задача удалена по событию", zap.String("task_id", ev.TaskID))
		}
	}
}

// merge заменяет запись ответом сервера. Если задача исчезла, пока запрос
// был в полёте (например, удалена событием), слияние молча пропускается.
func (r *Reconciler) merge(updated *task.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[updated.ID]; !ok {
		logger.Info("Reconciler: Запись исчезла во время запроса, слияние пропущено",
			zap.String("task_id", updated.ID))
		return
	}
	r.tasks[updated.ID] = updated.Clone()
}

func (r *Reconciler) insert(t *task.Task) bool {
	if _, ok := r.tasks[t.ID]; ok {
		return false
	}
	r.tasks[t.ID] = t.Clone()
	r.order = append(r.order, t.ID)
	return true
}

func (r *Reconciler) remove(id string) bool {
	if _, ok := r.tasks[id]; !ok {
		return false
	}
	delete(r.tasks, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}
