package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// votesTotal counts per-category vote outcomes: accepted, duplicate, invalid, error.
	votesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gift_votes_total",
			Help: "Per-category vote submissions by outcome.",
		},
		[]string{"result"},
	)

	// revealsTotal counts successful reveals by payload type (answers|notes).
	revealsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gift_reveals_total",
			Help: "Successful day reveals by payload type.",
		},
		[]string{"type"},
	)

	// invitationsTotal counts invitation rows created.
	invitationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gift_invitations_total",
			Help: "Invitations created.",
		},
	)
)

func init() {
	prometheus.MustRegister(votesTotal, revealsTotal, invitationsTotal)
}

func voteResult(err error) string {
	if err == nil {
		return "accepted"
	}
	switch KindOf(err) {
	case KindConflict:
		return "duplicate"
	case KindInvalidInput, KindNotFound:
		return "invalid"
	default:
		return "error"
	}
}
