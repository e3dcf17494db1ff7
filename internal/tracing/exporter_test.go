package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func readRecords(t *testing.T, path string) []SpanRecord {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []SpanRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec SpanRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestFileExporter_CreatesParentDirectories(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "nested", "dir", "traces.jsonl")

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	_, err = os.Stat(tracePath)
	require.NoError(t, err)
	require.NoError(t, exporter.Shutdown(context.Background()))
}

func TestFileExporter_WritesOneLinePerSpan(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	traceID := trace.TraceID{1, 2, 3}
	parent := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: trace.SpanID{9}})
	start := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	stubs := tracetest.SpanStubs{
		{
			Name:        "cli.gymlog.log",
			SpanContext: parent,
			StartTime:   start,
			EndTime:     start.Add(40 * time.Millisecond),
			Status:      sdktrace.Status{Code: codes.Ok},
		},
		{
			Name:        "kvstore.set",
			SpanContext: trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: trace.SpanID{10}}),
			Parent:      parent,
			StartTime:   start,
			EndTime:     start.Add(2500 * time.Microsecond),
			Attributes:  []attribute.KeyValue{attribute.String(AttrKVKey, "mara-gym/entries")},
			Status:      sdktrace.Status{Code: codes.Error, Description: "disk full"},
		},
	}
	require.NoError(t, exporter.ExportSpans(context.Background(), stubs.Snapshots()))
	require.NoError(t, exporter.Shutdown(context.Background()))

	records := readRecords(t, tracePath)
	require.Len(t, records, 2)

	require.Equal(t, "cli.gymlog.log", records[0].Name)
	require.Equal(t, "OK", records[0].Status)
	require.Empty(t, records[0].ParentSpanID)
	require.InDelta(t, 40.0, records[0].DurationMs, 0.001)

	require.Equal(t, "kvstore.set", records[1].Name)
	require.Equal(t, records[0].TraceID, records[1].TraceID)
	require.Equal(t, records[0].SpanID, records[1].ParentSpanID)
	require.Equal(t, "ERROR", records[1].Status)
	require.Equal(t, "disk full", records[1].StatusMsg)
	require.Equal(t, "mara-gym/entries", records[1].Attributes[AttrKVKey])
	require.InDelta(t, 2.5, records[1].DurationMs, 0.001)
}

func TestFileExporter_AppendsToExistingFile(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	require.NoError(t, os.WriteFile(tracePath, []byte(`{"name":"earlier"}`+"\n"), 0o600))

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)
	stub := tracetest.SpanStub{Name: "later", StartTime: time.Now(), EndTime: time.Now()}
	require.NoError(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exporter.Shutdown(context.Background()))

	records := readRecords(t, tracePath)
	require.Len(t, records, 2)
	require.Equal(t, "earlier", records[0].Name)
	require.Equal(t, "later", records[1].Name)
}

func TestFileExporter_ExportAfterShutdownFails(t *testing.T) {
	exporter, err := NewFileExporter(filepath.Join(t.TempDir(), "traces.jsonl"))
	require.NoError(t, err)
	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()), "second shutdown is a no-op")

	stub := tracetest.SpanStub{Name: "late"}
	err = exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()})
	require.Error(t, err)

	require.NoError(t, exporter.ExportSpans(context.Background(), nil), "empty batches are ignored")
}
