package http

import (
	"encoding/json"
	"net/http"
)

// handleOverview serves GET /api/finance/overview. Query parameters:
// period (month|quarter|semester|year), year, value. Defaults to the
// current calendar month.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	p, err := parsePeriod(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	scope := s.finance.NewReportScope()
	snap, err := s.finance.FinancialOverview(r.Context(), scope, p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

type initialBalanceResponse struct {
	InitialBalance float64 `json:"initialBalance"`
}

type initialBalanceRequest struct {
	InitialBalance float64 `json:"initialBalance"`
}

// handleInitialBalance serves GET and PUT /api/finance/initial-balance.
// Reads are open; writes require the admin bearer token.
func (s *Server) handleInitialBalance(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		balance, err := s.finance.InitialBalance(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, initialBalanceResponse{InitialBalance: balance})

	case http.MethodPut:
		if err := s.authorizeAdmin(r); err != nil {
			writeError(w, r, err)
			return
		}

		var req initialBalanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		if err := s.finance.SetInitialBalance(r.Context(), req.InitialBalance, "admin"); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, initialBalanceResponse{InitialBalance: req.InitialBalance})

	default:
		w.Header().Set("Allow", "GET, PUT")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type exportResponse struct {
	RowRef string `json:"rowRef"`
}

// handleExport serves POST /api/finance/export with the same period
// parameters as the overview. Admin only.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.authorizeAdmin(r); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := parsePeriod(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ref, err := s.finance.ExportOverview(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, exportResponse{RowRef: ref})
}
