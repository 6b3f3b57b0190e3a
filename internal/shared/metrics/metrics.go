package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	mergeRequestsTotal  atomic.Uint64
	mergeCompletedTotal atomic.Uint64
	mergeRejectedTotal  atomic.Uint64
	mergeFailedTotal    atomic.Uint64
	mergeCanceledTotal  atomic.Uint64

	mergeDuration    = newHistogram([]float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000})
	mergeOutputPages = newHistogram([]float64{2, 3, 5, 10, 25, 50, 100})
)

// IncMergeRequests counts a merge request as received.
func IncMergeRequests() {
	mergeRequestsTotal.Add(1)
}

// IncMergeCompleted counts a merge that produced a document.
func IncMergeCompleted() {
	mergeCompletedTotal.Add(1)
}

// IncMergeRejected counts a merge refused because of client input.
func IncMergeRejected() {
	mergeRejectedTotal.Add(1)
}

// IncMergeFailed counts a merge that failed on the server side.
func IncMergeFailed() {
	mergeFailedTotal.Add(1)
}

// IncMergeCanceled counts a merge abandoned because its request context ended.
func IncMergeCanceled() {
	mergeCanceledTotal.Add(1)
}

// ObserveMergeDurationMs records a merge duration in milliseconds.
func ObserveMergeDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	mergeDuration.Observe(value)
}

// ObserveOutputPages records the page count of a combined document.
func ObserveOutputPages(pages int) {
	if pages < 0 {
		pages = 0
	}
	mergeOutputPages.Observe(float64(pages))
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "merge_requests_total", "Total merge requests received", mergeRequestsTotal.Load())
	writeCounter(&buf, "merge_completed_total", "Total combined documents produced", mergeCompletedTotal.Load())
	writeCounter(&buf, "merge_rejected_total", "Total merge requests rejected for invalid input", mergeRejectedTotal.Load())
	writeCounter(&buf, "merge_failed_total", "Total merge requests failed with a server error", mergeFailedTotal.Load())
	writeCounter(&buf, "merge_canceled_total", "Total merge requests abandoned by the client", mergeCanceledTotal.Load())
	writeHistogram(&buf, "merge_duration_ms", "Merge duration in milliseconds", mergeDuration.Snapshot())
	writeHistogram(&buf, "merge_output_pages", "Pages per combined document", mergeOutputPages.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe stores value in the first bucket whose bound it does not exceed;
// Snapshot consumers accumulate.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
