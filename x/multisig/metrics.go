package multisig

import (
	"github.com/iov-one/safelite/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	protocolBatch       = "batch"
	protocolIncremental = "incremental"
)

var (
	executedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "safelite",
		Name:      "transactions_executed_total",
		Help:      "Number of executed transactions by authorization protocol.",
	}, []string{"protocol"})

	signaturesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "safelite",
		Name:      "signatures_recorded_total",
		Help:      "Number of signatures recorded in pending transactions.",
	})

	rejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "safelite",
		Name:      "transactions_rejected_total",
		Help:      "Number of rejected authorization attempts by protocol and reason.",
	}, []string{"protocol", "reason"})

	ownershipTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "safelite",
		Name:      "ownership_changes_total",
		Help:      "Number of owner set changes.",
	}, []string{"change"})
)

// RegisterMetrics registers the wallet collectors. Registering twice with
// the same registerer is not an error.
func RegisterMetrics(r prometheus.Registerer) error {
	collectors := []prometheus.Collector{executedTotal, signaturesTotal, rejectedTotal, ownershipTotal}
	for _, c := range collectors {
		if err := r.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return errors.Wrapf(errors.ErrHuman, "register metrics: %s", err)
		}
	}
	return nil
}

// rejectReason returns the description of the registered error kind.
func rejectReason(err error) string {
	if e, ok := errors.Lookup(errors.Code(err)); ok {
		return e.Error()
	}
	return "unknown"
}

func observeEvents(events []Event) {
	for _, e := range events {
		if oc, ok := e.(OwnerChanged); ok {
			if oc.Added {
				ownershipTotal.WithLabelValues("added").Inc()
			} else {
				ownershipTotal.WithLabelValues("removed").Inc()
			}
		}
	}
}
