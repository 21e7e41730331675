package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Qoxxoraliyev/employee-management/internal/employee"
	"github.com/Qoxxoraliyev/employee-management/internal/salary"
	"github.com/Qoxxoraliyev/employee-management/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer consumes employee lifecycle events and records initial salary
// payments until interrupted.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	groupID := os.Getenv("KAFKA_CONSUMER_GROUP")
	if groupID == "" {
		groupID = "employee-management-salary"
	}

	salaryRepo := salary.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	salaryService := salary.NewService(sqlDB, salaryRepo, employeeRepo, logger)

	consumer := salary.NewEmployeeCreatedConsumer(kafkaBroker, groupID, salaryService, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return consumer.Close()
}
