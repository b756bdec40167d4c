// Package database holds the TimescaleDB connection and sample table used as
// an optional dataset source.
package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chrissnell/circadian/internal/log"
	"go.uber.org/zap"
)

// Client holds the connection to a TimescaleDB database
type Client struct {
	connectionString string
	DB               *gorm.DB
	logger           *zap.SugaredLogger
}

// NewClient creates a new database client
func NewClient(connectionString string, logger *zap.SugaredLogger) *Client {
	return &Client{
		connectionString: connectionString,
		logger:           logger,
	}
}

// Connect connects to the TimescaleDB database
func (c *Client) Connect() error {
	db, err := CreateConnection(c.connectionString)
	if err != nil {
		return err
	}
	c.DB = db
	c.logger.Info("TimescaleDB connection successful")
	return nil
}

// Close releases the underlying connection pool
func (c *Client) Close() error {
	if c.DB == nil {
		return nil
	}
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// LoadSamples returns every stored sample of a dataset ordered by minute
func (c *Client) LoadSamples(ctx context.Context, dataset string) ([]Sample, error) {
	if c.DB == nil {
		return nil, fmt.Errorf("database client is not connected")
	}

	var samples []Sample
	err := c.DB.WithContext(ctx).
		Where("dataset = ?", dataset).
		Order("minute").
		Find(&samples).Error
	if err != nil {
		return nil, fmt.Errorf("error querying samples for dataset %s: %w", dataset, err)
	}

	return samples, nil
}

// CreateConnection opens a GORM handle that logs through zap
func CreateConnection(connectionString string) (*gorm.DB, error) {
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	log.Info("connecting to TimescaleDB...")
	db, err := gorm.Open(postgres.Open(connectionString), &gorm.Config{Logger: dbLogger})
	if err != nil {
		log.Warn("warning: unable to create a TimescaleDB connection:", err)
		return nil, err
	}

	return db, nil
}
