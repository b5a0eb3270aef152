package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_WritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "stringshop-api", Level: zerolog.InfoLevel, Output: &buf})

	ctx := logg.WithOrderID(context.Background(), "ord-123")
	logg.Info(ctx, "order created")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry["service"] != "stringshop-api" {
		t.Fatalf("expected service field, got %v", entry["service"])
	}
	if entry["order_id"] != "ord-123" {
		t.Fatalf("expected order_id field, got %v", entry["order_id"])
	}
	if entry["message"] != "order created" {
		t.Fatalf("expected message, got %v", entry["message"])
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{Level: zerolog.WarnLevel, Output: &buf})

	logg.Info(context.Background(), "should be dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info log below warn level to be dropped, got %q", buf.String())
	}

	logg.Warn(context.Background(), "should be written")
	if buf.Len() == 0 {
		t.Fatal("expected warn log to be written")
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tc := range cases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestWithFields_AccumulatesAcrossContexts(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{Level: zerolog.InfoLevel, Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-42")
	ctx = logg.WithFields(ctx, map[string]any{"actor_role": "admin"})
	logg.Info(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry["request_id"] != "req-42" {
		t.Fatalf("expected request_id field, got %v", entry["request_id"])
	}
	if entry["actor_role"] != "admin" {
		t.Fatalf("expected actor_role field, got %v", entry["actor_role"])
	}
}

func TestError_IncludesStack(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{Level: zerolog.InfoLevel, Output: &buf})

	logg.Error(context.Background(), "boom", nil)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry["stack"] == nil || entry["stack"] == "" {
		t.Fatal("expected stack field on error logs")
	}
}
