package service

import (
	"testing"

	"github.com/sauhard98/sirion/config"
)

func TestNewArchiveService(t *testing.T) {
	cfg := &config.ArchiveConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "test",
		SecretKey: "test",
		Bucket:    "contracts",
		UseSSL:    false,
	}

	svc, err := NewArchiveService(cfg)
	// Client creation does not dial; connections happen on first operation
	if err != nil {
		t.Logf("NewArchiveService returned error: %v", err)
	} else if svc == nil {
		t.Error("Expected non-nil service")
	}
}

func TestArchiveServicePublicURL(t *testing.T) {
	tests := []struct {
		name       string
		useSSL     bool
		endpoint   string
		bucket     string
		contractID string
		filename   string
		expected   string
	}{
		{
			name:       "http url",
			useSSL:     false,
			endpoint:   "localhost:9000",
			bucket:     "contracts",
			contractID: "CNT-1",
			filename:   "msa.pdf",
			expected:   "http://localhost:9000/contracts/CNT-1/msa.pdf",
		},
		{
			name:       "https url",
			useSSL:     true,
			endpoint:   "minio.example.com",
			bucket:     "docs",
			contractID: "CNT-2",
			filename:   "nda.pdf",
			expected:   "https://minio.example.com/docs/CNT-2/nda.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.ArchiveConfig{
				Endpoint:  tt.endpoint,
				AccessKey: "test",
				SecretKey: "test",
				Bucket:    tt.bucket,
				UseSSL:    tt.useSSL,
			}

			svc, err := NewArchiveService(cfg)
			if err != nil {
				t.Fatalf("Failed to create service: %v", err)
			}

			got := svc.PublicURL(tt.contractID, tt.filename)
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}
