package ctxutil

import (
	"context"
	"testing"
)

func TestTraceDataRoundTrip(t *testing.T) {
	if GetTraceData(context.Background()) != nil {
		t.Fatal("expected no trace data on a bare context")
	}
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t1", RequestID: "r1"})
	td := GetTraceData(ctx)
	if td == nil || td.TraceID != "t1" || td.RequestID != "r1" {
		t.Fatalf("unexpected trace data: %+v", td)
	}
}

func TestLogFields(t *testing.T) {
	if got := LogFields(context.Background()); got != nil {
		t.Fatalf("expected nil fields, got %v", got)
	}
	ctx := WithTraceData(context.Background(), &TraceData{RequestID: "r1"})
	got := LogFields(ctx)
	if len(got) != 2 || got[0] != "request_id" || got[1] != "r1" {
		t.Fatalf("unexpected fields: %v", got)
	}
}
