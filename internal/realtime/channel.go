package realtime

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"taskboard/internal/logger"

	taskmodel "taskboard/internal/models/task"
)

type EventType string

const EventCreated EventType = "taskCreated"
const EventUpdated EventType = "taskUpdated"
const EventDeleted EventType = "taskDeleted"

// Event - типизированное событие канала.
// Для created/updated заполнена Task, для deleted - только TaskID.
type Event struct {
	Type   EventType
	Task   *taskmodel.Task
	TaskID string
}

// Channel держит одно подключение на сессию и переподключается сам,
// политика повторов отдана клиенту NATS. Порядок событий не гарантируется.
type Channel struct {
	url           string
	userID        string
	reconnectWait time.Duration

	mu     sync.Mutex
	nc     *nats.Conn
	subs   []*nats.Subscription
	events chan Event
	closed bool
}

const eventBufferSize = 64

func NewChannel(url, userID string, reconnectWait time.Duration) *Channel {
	return &Channel{
		url:           url,
		userID:        userID,
		reconnectWait: reconnectWait,
		events:        make(chan Event, eventBufferSize),
	}
}

// Connect идемпотентен: повторный вызов на живом канале ничего не делает
func (c *Channel) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.nc != nil {
		return nil
	}

	nc, err := nats.Connect(c.url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(c.reconnectWait),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("Realtime: Соединение потеряно", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Realtime: Соединение восстановлено", zap.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return err
	}

	for _, subject := range []string{string(EventCreated), string(EventUpdated), string(EventDeleted)} {
		sub, err := nc.Subscribe(subject, c.handleMsg)
		if err != nil {
			nc.Close()
			return err
		}
		c.subs = append(c.subs, sub)
	}

	c.nc = nc
	logger.Info("Realtime: Канал подключен", zap.String("url", c.url))
	return nil
}

// Events - поток событий для реконсилятора, закрывается вместе с каналом
func (c *Channel) Events() <-chan Event {
	return c.events
}

// Close идемпотентен
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	for _, sub := range c.subs {
		sub.Unsubscribe()
	}
	c.subs = nil

	if c.nc != nil {
		c.nc.Close()
		c.nc = nil
	}

	close(c.events)
	logger.Info("Realtime: Канал закрыт")
}

func (c *Channel) handleMsg(m *nats.Msg) {
	switch EventType(m.Subject) {
	case EventCreated, EventUpdated:
		var t taskmodel.Task
		if err := json.Unmarshal(m.Data, &t); err != nil {
			logger.Warn("Realtime: Не удалось разобрать событие", zap.String("subject", m.Subject), zap.Error(err))
			return
		}
		// чужие задачи отбрасываются на клиенте
		if t.UserID != c.userID {
			return
		}
		c.emit(Event{Type: EventType(m.Subject), Task: &t})
	case EventDeleted:
		c.emit(Event{Type: EventDeleted, TaskID: decodeTaskID(m.Data)})
	}
}

// delete несёт голый идентификатор, иногда в JSON-кавычках
func decodeTaskID(data []byte) string {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		return id
	}
	return strings.TrimSpace(string(data))
}

func (c *Channel) emit(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// событие, догнавшее закрытый канал, молча пропадает
	if c.closed {
		return
	}

	select {
	case c.events <- ev:
	default:
		// переполнение буфера закроет следующий Load
		logger.Warn("Realtime: Событие отброшено, буфер заполнен", zap.String("type", string(ev.Type)))
	}
}
