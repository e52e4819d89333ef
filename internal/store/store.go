// Package store records classifications for later analysis.
// The real implementation writes to ClickHouse.
package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/sweeney/tinyml-panel/internal/logic"
)

// Recorder persists classifications.
type Recorder interface {
	Record(ctx context.Context, c logic.Classification) error
	Close() error
}

const createClassifications = `
	CREATE TABLE IF NOT EXISTS classifications (
		timestamp   DateTime64(3),
		boot_id     String,
		temperature Float64,
		humidity    Float64,
		score       Float64,
		state       LowCardinality(String)
	) ENGINE = MergeTree()
	ORDER BY timestamp
`

const insertClassification = `
	INSERT INTO classifications (timestamp, boot_id, temperature, humidity, score, state)
	VALUES (?, ?, ?, ?, ?, ?)
`

// conn is the subset of driver.Conn the store uses.
type conn interface {
	Exec(ctx context.Context, query string, args ...interface{}) error
	Close() error
}

// ClickHouse writes classifications into a ClickHouse table.
type ClickHouse struct {
	conn   conn
	bootID string
}

// Options selects the ClickHouse server.
type Options struct {
	Addr     string
	Database string
	Username string
	Password string
}

// NewClickHouse connects, pings and creates the schema.
func NewClickHouse(ctx context.Context, opts Options, bootID string) (*ClickHouse, error) {
	c, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{opts.Addr},
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
		DialTimeout: 5 * time.Second,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store: open clickhouse: %w", err)
	}

	if err := c.Ping(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("store: ping clickhouse: %w", err)
	}
	log.Printf("store: connected to ClickHouse at %s", opts.Addr)

	s := &ClickHouse{conn: c, bootID: bootID}
	if err := s.InitSchema(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return s, nil
}

// InitSchema creates the classifications table if it does not exist.
func (s *ClickHouse) InitSchema(ctx context.Context) error {
	if err := s.conn.Exec(ctx, createClassifications); err != nil {
		return fmt.Errorf("store: create table: %w", err)
	}
	return nil
}

// Record inserts one classification.
func (s *ClickHouse) Record(ctx context.Context, c logic.Classification) error {
	err := s.conn.Exec(ctx, insertClassification,
		c.Timestamp.UTC(),
		s.bootID,
		c.Reading.Temperature,
		c.Reading.Humidity,
		c.Score,
		string(c.State),
	)
	if err != nil {
		return fmt.Errorf("store: insert classification: %w", err)
	}
	return nil
}

// Close closes the connection.
func (s *ClickHouse) Close() error {
	return s.conn.Close()
}
