// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/govote/cliparse"
	"github.com/danielhkuo/govote/handlers"
	"github.com/danielhkuo/govote/ledger"
	"github.com/danielhkuo/govote/middleware"
)

// NewRouter registers every endpoint. Metrics are served from gatherer; a nil
// gatherer falls back to the default registry.
func NewRouter(l *ledger.Ledger, clock ledger.Clock, gatherer prometheus.Gatherer, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// Initialize handlers
	roundHandler := handlers.NewRoundHandler(l)
	voterHandler := handlers.NewVoterHandler(l)
	votingHandler := handlers.NewVotingHandler(l, cfg)
	proposalHandler := handlers.NewProposalHandler(l)
	adminHandler := handlers.NewAdminHandler(l, clock)
	identityHandler := handlers.NewIdentityHandler(cfg)

	// caller wraps a mutating handler with logging and identity checks
	caller := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireCaller(cfg.CallerKeySalt, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Identities and status (public)
	mux.HandleFunc("POST /identities", middleware.WithLogging(identityHandler.CreateIdentity))
	mux.HandleFunc("GET /status", middleware.WithLogging(votingHandler.GetStatus))
	mux.HandleFunc("GET /clock", middleware.WithLogging(adminHandler.GetClock))

	// Rounds and candidates
	mux.HandleFunc("POST /rounds", caller(roundHandler.CreateRound))
	mux.HandleFunc("GET /rounds/{round}", middleware.WithLogging(roundHandler.GetRound))
	mux.HandleFunc("POST /rounds/{round}/start", caller(roundHandler.StartRound))
	mux.HandleFunc("POST /rounds/{round}/candidates", caller(roundHandler.AddCandidate))
	mux.HandleFunc("GET /rounds/{round}/candidates", middleware.WithLogging(roundHandler.ListCandidates))
	mux.HandleFunc("GET /rounds/{round}/candidates/{id}", middleware.WithLogging(roundHandler.GetCandidate))
	mux.HandleFunc("GET /rounds/{round}/stats", middleware.WithLogging(roundHandler.GetStats))
	mux.HandleFunc("GET /rounds/{round}/leaderboard", middleware.WithLogging(roundHandler.GetLeaderboard))

	// Delegation
	mux.HandleFunc("POST /rounds/{round}/delegation", caller(voterHandler.Delegate))
	mux.HandleFunc("DELETE /rounds/{round}/delegation", caller(voterHandler.RevokeDelegation))
	mux.HandleFunc("GET /rounds/{round}/delegations/{voter}", middleware.WithLogging(voterHandler.GetDelegation))

	// Voters
	mux.HandleFunc("POST /voters", caller(voterHandler.RegisterVoter))
	mux.HandleFunc("GET /voters/{voter}", middleware.WithLogging(voterHandler.GetVoter))
	mux.HandleFunc("GET /voters/{voter}/eligible", middleware.WithLogging(voterHandler.GetEligibility))
	mux.HandleFunc("POST /voters/{voter}/kyc", caller(voterHandler.VerifyKYC))

	// Voting and audit
	mux.HandleFunc("POST /votes", caller(votingHandler.CastVote))
	mux.HandleFunc("GET /rounds/{round}/votes/{voter}", middleware.WithLogging(votingHandler.GetVoteRecord))
	mux.HandleFunc("GET /audit", middleware.WithLogging(votingHandler.ListAudit))
	mux.HandleFunc("GET /audit/{id}", middleware.WithLogging(votingHandler.GetAuditEntry))

	// Proposals
	mux.HandleFunc("POST /proposals", caller(proposalHandler.CreateProposal))
	mux.HandleFunc("GET /proposals/{id}", middleware.WithLogging(proposalHandler.GetProposal))
	mux.HandleFunc("POST /proposals/{id}/votes", caller(proposalHandler.VoteOnProposal))

	// Administration
	mux.HandleFunc("POST /admin/pause", caller(adminHandler.Pause))
	mux.HandleFunc("PUT /admin/config", caller(adminHandler.UpdateConfig))
	mux.HandleFunc("PUT /admin/emergency-admin", caller(adminHandler.SetEmergencyAdmin))
	mux.HandleFunc("POST /admin/clock", caller(adminHandler.AdvanceClock))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("govote API v1"))
	})

	return mux
}
