package salary

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	employeeerrors "github.com/Qoxxoraliyev/employee-management/internal/employee/errors"
	"github.com/Qoxxoraliyev/employee-management/internal/events"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EmployeeCreatedConsumer seeds the first salary record for employees
// created with an initial salary.
type EmployeeCreatedConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewEmployeeCreatedConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *EmployeeCreatedConsumer {
	l := zap.L().Named("salary.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.consumer")
	}

	return &EmployeeCreatedConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.EmployeeCreatedTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *EmployeeCreatedConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume employee_created failed", zap.Error(err))
				continue
			}

			if c.processMessage(ctx, msg.Value) {
				c.commit(ctx, msg)
			}
		}
	}()
}

// processMessage reports whether the offset may be committed. It returns
// false only on retryable failures so the event is redelivered.
func (c *EmployeeCreatedConsumer) processMessage(ctx context.Context, value []byte) bool {
	var event events.EmployeeCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		c.logger.Error("decode employee_created event failed", zap.Error(err))
		return true
	}

	if event.InitialSalary <= 0 {
		return true
	}

	// A redelivered event (crash between create and commit) must not
	// seed a second row.
	history, err := c.service.GetHistoryByEmployee(ctx, event.EmployeeID)
	if err != nil {
		// The employee may have been deleted before the event landed;
		// skipping is safe.
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			c.logger.Warn("employee missing for event, skipping",
				zap.Int64("employee_id", event.EmployeeID),
			)
			return true
		}
		c.logger.Error("salary history lookup failed",
			zap.Int64("employee_id", event.EmployeeID),
			zap.Error(err),
		)
		return false
	}
	if len(history) > 0 {
		c.logger.Info("initial salary already recorded, skipping duplicate event",
			zap.Int64("employee_id", event.EmployeeID),
		)
		return true
	}

	_, err = c.service.Create(ctx, CreateSalaryRequest{
		EmployeeID:  event.EmployeeID,
		Amount:      event.InitialSalary,
		Currency:    event.Currency,
		PaymentDate: time.Now().UTC().Format(dateLayout),
	})
	if err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			c.logger.Warn("employee missing for event, skipping",
				zap.Int64("employee_id", event.EmployeeID),
			)
			return true
		}

		c.logger.Error("create initial salary failed",
			zap.Int64("employee_id", event.EmployeeID),
			zap.Error(err),
		)
		return false
	}

	c.logger.Info("initial salary recorded from employee_created event",
		zap.Int64("employee_id", event.EmployeeID),
		zap.Float64("amount", event.InitialSalary),
	)
	return true
}

func (c *EmployeeCreatedConsumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("commit employee_created event failed", zap.Error(err))
	}
}

func (c *EmployeeCreatedConsumer) Close() error {
	return c.reader.Close()
}
