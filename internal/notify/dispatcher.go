package notify

import "go.uber.org/zap"

type Message struct {
	To      string
	Subject string
	HTML    string
}

// Dispatcher delivers email off the request path. Delivery is best-effort:
// failures are logged and the queue drops messages rather than block a
// payment confirmation.
type Dispatcher struct {
	mailer Mailer
	logger *zap.Logger
	queue  chan Message
}

func NewDispatcher(mailer Mailer, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		logger: logger,
		queue:  make(chan Message, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		if err := d.mailer.Send(msg.To, msg.Subject, msg.HTML); err != nil {
			d.logger.Error("email delivery failed",
				zap.String("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(msg Message) {
	select {
	case d.queue <- msg:
	default:
		// full queue must never block the API
		d.logger.Warn("notification queue full, dropping message",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
		)
	}
}
