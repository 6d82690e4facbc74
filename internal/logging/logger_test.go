package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetLogger_FallbackWithoutInit(t *testing.T) {
	globalLogger = nil
	if GetLogger() == nil {
		t.Fatal("expected fallback logger")
	}
}

func TestInfo_WritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core).Sugar())
	defer func() { globalLogger = nil }()

	Info("application decided", "application_id", "app-1", "status", "approved")

	entries := logs.FilterMessage("application decided").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["application_id"] != "app-1" {
		t.Errorf("expected application_id field, got %v", fields["application_id"])
	}
	if fields["status"] != "approved" {
		t.Errorf("expected status field, got %v", fields["status"])
	}
}

func TestWithRequest_AttachesContext(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core).Sugar())
	defer func() { globalLogger = nil }()

	WithRequest("req-1", "p-1", "/api/v1/me").Infow("hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["principal_id"] != "p-1" {
		t.Errorf("expected principal_id p-1, got %v", entries[0].ContextMap()["principal_id"])
	}
}

func TestInit_Production(t *testing.T) {
	defer func() { globalLogger = nil }()
	if err := Init("production"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if globalLogger == nil {
		t.Fatal("expected global logger to be set")
	}
}
