package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency and DRY
const (
	// Common attributes (reused across metrics)
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrOperation = "operation"
	attrResult    = "result"
	attrTool      = "tool"
	attrStore     = "store"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram
	activeSessions      metric.Int64UpDownCounter

	// Outlook bridge metrics
	bridgeOperationsTotal   metric.Int64Counter
	bridgeOperationDuration metric.Float64Histogram

	// Reference cache metrics
	refAssignmentsTotal metric.Int64Counter
	refEvictionsTotal   metric.Int64Counter
	refResolvesTotal    metric.Int64Counter

	// MCP Tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	// Configuration
	// detailedLabels controls whether high-cardinality labels are included
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The detailedLabels parameter controls whether high-cardinality labels are included.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	// HTTP Metrics
	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.activeSessions, err = meter.Int64UpDownCounter(
		"active_sessions",
		metric.WithDescription("Number of active user sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create active_sessions gauge: %w", err)
	}

	// Outlook bridge metrics
	m.bridgeOperationsTotal, err = meter.Int64Counter(
		"outlook_bridge_operations_total",
		metric.WithDescription("Total number of Outlook bridge operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create outlook_bridge_operations_total counter: %w", err)
	}

	m.bridgeOperationDuration, err = meter.Float64Histogram(
		"outlook_bridge_operation_duration_seconds",
		metric.WithDescription("Outlook bridge operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create outlook_bridge_operation_duration_seconds histogram: %w", err)
	}

	// Reference cache metrics
	m.refAssignmentsTotal, err = meter.Int64Counter(
		"refcache_assignments_total",
		metric.WithDescription("Total number of short reference assignments"),
		metric.WithUnit("{assignment}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create refcache_assignments_total counter: %w", err)
	}

	m.refEvictionsTotal, err = meter.Int64Counter(
		"refcache_evictions_total",
		metric.WithDescription("Total number of entries evicted from the reference cache"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create refcache_evictions_total counter: %w", err)
	}

	m.refResolvesTotal, err = meter.Int64Counter(
		"refcache_resolves_total",
		metric.WithDescription("Total number of short reference resolutions"),
		metric.WithUnit("{resolve}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create refcache_resolves_total counter: %w", err)
	}

	// MCP Tool Metrics
	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordBridgeOperation records an Outlook bridge operation with operation
// name, status, and duration.
//
// Parameters:
//   - operation: Bridge operation (list_folders, search_messages, expand_calendar, get_item)
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the operation
func (m *Metrics) RecordBridgeOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m.bridgeOperationsTotal == nil || m.bridgeOperationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.bridgeOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.bridgeOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordRefAssignment records a short reference assignment.
// Result is "collision" when suffix probing was needed, "direct" otherwise.
func (m *Metrics) RecordRefAssignment(ctx context.Context, collision bool) {
	if m.refAssignmentsTotal == nil {
		return // Instrumentation not initialized
	}

	result := "direct"
	if collision {
		result = "collision"
	}

	m.refAssignmentsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordRefEviction records entries removed from the reference cache.
func (m *Metrics) RecordRefEviction(ctx context.Context, evicted int) {
	if m.refEvictionsTotal == nil {
		return // Instrumentation not initialized
	}

	m.refEvictionsTotal.Add(ctx, int64(evicted))
}

// RecordRefResolve records a short reference lookup with its outcome
// ("hit" or "miss").
func (m *Metrics) RecordRefResolve(ctx context.Context, hit bool) {
	if m.refResolvesTotal == nil {
		return // Instrumentation not initialized
	}

	result := "miss"
	if hit {
		result = "hit"
	}

	m.refResolvesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordToolInvocation records an MCP tool invocation with tool name, status, and duration.
//
// Parameters:
//   - toolName: Name of the MCP tool (e.g., "outlook_search_emails", "outlook_read_item")
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the tool execution
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// IncrementActiveSessions increments the active sessions counter.
func (m *Metrics) IncrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return // Instrumentation not initialized
	}

	m.activeSessions.Add(ctx, 1)
}

// DecrementActiveSessions decrements the active sessions counter.
func (m *Metrics) DecrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return // Instrumentation not initialized
	}

	m.activeSessions.Add(ctx, -1)
}

// RecordToolInvocationWithStore records an MCP tool invocation with the
// mail store it targeted. The store label is high-cardinality in shared
// deployments and is only added when detailedLabels is enabled.
func (m *Metrics) RecordToolInvocationWithStore(ctx context.Context, toolName, status, store string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	// Only add high-cardinality labels if explicitly enabled
	if m.detailedLabels && store != "" {
		attrs = append(attrs, attribute.String(attrStore, store))
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
