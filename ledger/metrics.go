// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the ledger's Prometheus collectors. A zero Metrics is usable
// and records nothing until Register is called.
type Metrics struct {
	operations    *prometheus.CounterVec
	votesCast     prometheus.Counter
	voteWeight    prometheus.Counter
	proposalVotes *prometheus.CounterVec

	registerOnce sync.Once
}

// Register registers the collectors with registry. Nil registry is a no-op;
// calls after the first are no-ops.
func (m *Metrics) Register(registry prometheus.Registerer) {
	if registry == nil {
		return
	}

	m.registerOnce.Do(func() {
		factory := promauto.With(registry)

		m.operations = factory.NewCounterVec(prometheus.CounterOpts{
			Name: "govote_ledger_operations_total",
			Help: "Total number of ledger operations by operation and result",
		}, []string{"operation", "result"})

		m.votesCast = factory.NewCounter(prometheus.CounterOpts{
			Name: "govote_votes_cast_total",
			Help: "Total number of accepted candidate votes",
		})

		m.voteWeight = factory.NewCounter(prometheus.CounterOpts{
			Name: "govote_vote_weight_total",
			Help: "Total effective weight applied to candidate tallies",
		})

		m.proposalVotes = factory.NewCounterVec(prometheus.CounterOpts{
			Name: "govote_proposal_votes_total",
			Help: "Total number of proposal votes by side",
		}, []string{"side"})
	})
}

func (m *Metrics) observeOperation(op string, err error) {
	if m == nil || m.operations == nil {
		return
	}
	m.operations.WithLabelValues(op, resultLabel(err)).Inc()
}

func (m *Metrics) observeVote(weight uint64) {
	if m == nil || m.votesCast == nil {
		return
	}
	m.votesCast.Inc()
	m.voteWeight.Add(float64(weight))
}

func (m *Metrics) observeProposalVote(support bool) {
	if m == nil || m.proposalVotes == nil {
		return
	}
	side := "against"
	if support {
		side = "for"
	}
	m.proposalVotes.WithLabelValues(side).Inc()
}

func resultLabel(err error) string {
	switch KindOf(err) {
	case nil:
		if err != nil {
			return "error"
		}
		return "ok"
	case ErrUnauthorized:
		return "unauthorized"
	case ErrNotFound:
		return "not_found"
	case ErrAlreadyDone:
		return "already_done"
	case ErrInvalidState:
		return "invalid_state"
	case ErrValidation:
		return "validation"
	default:
		return "rejected"
	}
}
