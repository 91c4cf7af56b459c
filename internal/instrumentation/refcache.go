package instrumentation

import "context"

// RefCacheRecorder adapts Metrics to the recorder interface of the
// reference cache. The cache invokes it synchronously while holding its
// lock, so the methods only bump counters.
type RefCacheRecorder struct {
	metrics *Metrics
}

// NewRefCacheRecorder creates a recorder backed by the given metrics.
func NewRefCacheRecorder(m *Metrics) *RefCacheRecorder {
	return &RefCacheRecorder{metrics: m}
}

// RecordAssignment implements refcache.MetricsRecorder.
func (r *RefCacheRecorder) RecordAssignment(collision bool) {
	r.metrics.RecordRefAssignment(context.Background(), collision)
}

// RecordEviction implements refcache.MetricsRecorder.
func (r *RefCacheRecorder) RecordEviction(evicted int) {
	r.metrics.RecordRefEviction(context.Background(), evicted)
}

// RecordResolve implements refcache.MetricsRecorder.
func (r *RefCacheRecorder) RecordResolve(hit bool) {
	r.metrics.RecordRefResolve(context.Background(), hit)
}
