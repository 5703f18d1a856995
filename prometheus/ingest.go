package prometheus

import (
	"context"
	"time"

	bookmarkai "github.com/mmelton12/bookmark-ai"
	"github.com/prometheus/client_golang/prometheus"
)

// Ingest outcomes recorded in the outcome label.
const (
	OutcomeCreated  = "created"
	OutcomeDegraded = "degraded"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Ensure Ingester implements bookmarkai.Ingester at compile time.
var _ bookmarkai.Ingester = (*Ingester)(nil)

// Ingester counts and times bookmark ingestion.
type Ingester struct {
	next     bookmarkai.Ingester
	total    *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewIngester wraps next and registers its collectors with r.
func NewIngester(next bookmarkai.Ingester, r *Registry) *Ingester {
	i := &Ingester{
		next: next,
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookmarkai",
			Name:      "ingest_total",
			Help:      "Bookmark ingestion attempts by outcome and degradation reason.",
		}, []string{"outcome", "reason"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bookmarkai",
			Name:      "ingest_duration_seconds",
			Help:      "Time spent ingesting a bookmark.",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 20},
		}),
	}
	r.reg.MustRegister(i.total, i.duration)
	return i
}

// CreateBookmark delegates to the wrapped ingester and records the outcome.
func (i *Ingester) CreateBookmark(ctx context.Context, userID, rawURL, credential string) (b *bookmarkai.Bookmark, err error) {
	defer func(begin time.Time) {
		i.duration.Observe(time.Since(begin).Seconds())
		outcome, reason := classify(b, err)
		i.total.WithLabelValues(outcome, reason).Inc()
	}(time.Now())
	return i.next.CreateBookmark(ctx, userID, rawURL, credential)
}

// classify maps an ingestion result onto label values.
func classify(b *bookmarkai.Bookmark, err error) (outcome, reason string) {
	if err != nil {
		switch code := bookmarkai.ErrorCode(err); code {
		case bookmarkai.EINVALID, bookmarkai.ECONFLICT:
			return OutcomeRejected, code
		default:
			return OutcomeFailed, code
		}
	}

	switch b.Warning {
	case "":
		return OutcomeCreated, "none"
	case bookmarkai.WarnFetchFailed:
		return OutcomeDegraded, "fetch"
	case bookmarkai.WarnCredentialMissing:
		return OutcomeDegraded, "credential"
	default:
		return OutcomeDegraded, "analysis"
	}
}
