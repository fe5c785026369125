package app

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestNewDependencies_MemoryDriver(t *testing.T) {
	cfg := DefaultConfig()

	deps, err := NewDependencies(context.Background(), cfg, log.WithField("test", t.Name()))
	if err != nil {
		t.Fatalf("new dependencies: %v", err)
	}
	defer deps.Close()

	if deps.Storage == nil || deps.Storage.uow == nil {
		t.Fatal("expected storage to be initialized")
	}
	if deps.Storage.outboxRepo == nil {
		t.Fatal("expected outbox repository to be initialized")
	}
	if deps.Warehouse == nil {
		t.Fatal("expected warehouse service to be initialized")
	}
	if deps.Health == nil {
		t.Fatal("expected health handler to be initialized")
	}
	if deps.Producer != nil {
		t.Fatal("expected no kafka producer without brokers")
	}
}

func TestNewDependencies_UnknownDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = "redis"

	if _, err := NewDependencies(context.Background(), cfg, log.WithField("test", t.Name())); err == nil {
		t.Fatal("expected error for unknown storage driver")
	}
}
