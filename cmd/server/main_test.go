package main

import (
	"testing"

	"salonpos/backend/internal/config"
)

func TestValidateServerConfigRejectsWildcardOriginOnPersistentStore(t *testing.T) {
	err := validateServerConfig(config.Config{AllowedOrigin: "*", StoreBackend: config.BackendFile})
	if err == nil {
		t.Fatalf("expected wildcard origin with file backend to be rejected")
	}
}

func TestValidateServerConfigAcceptsPinnedOrigin(t *testing.T) {
	err := validateServerConfig(config.Config{AllowedOrigin: "http://127.0.0.1:3000", StoreBackend: config.BackendPostgres})
	if err != nil {
		t.Fatalf("expected pinned origin to pass, got %v", err)
	}
	if err := validateServerConfig(config.Config{AllowedOrigin: "*", StoreBackend: config.BackendMemory}); err != nil {
		t.Fatalf("expected wildcard origin for memory demo to pass, got %v", err)
	}
}
