package audit

import "go.uber.org/zap"

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Dispatcher writes audit entries off the request path. Entries are dropped
// rather than block the API when the queue is full.
type Dispatcher struct {
	logger  *Logger
	zlogger *zap.Logger
	queue   chan Event
}

func NewDispatcher(logger *Logger, zlogger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger:  logger,
		zlogger: zlogger,
		queue:   make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.zlogger.Error("audit write failed", zap.String("action", ev.Action), zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.zlogger.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}
