package http

import (
	"log/slog"
	"net/http"

	"arthika/internal/invest"
)

const suggestionsCacheKey = "suggestions"
const topFundCount = 3

type suggestionsResponse struct {
	Funds    []invest.FundSuggestion    `json:"funds"`
	Deposits []invest.DepositSuggestion `json:"deposits"`
	Loading  bool                       `json:"loading"`
}

// handleSuggestions serves investment suggestions. Fund data comes
// from an external API, so failures degrade to the static deposit
// table with a loading flag instead of an error status.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	if cached, ok := s.suggestionsCache.Get(suggestionsCacheKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	funds, err := s.funds.TopFunds(r.Context(), topFundCount)
	if err != nil {
		slog.WarnContext(r.Context(), "Fund list fetch failed", "error", err)
		writeJSON(w, http.StatusOK, suggestionsResponse{
			Funds:    []invest.FundSuggestion{},
			Deposits: invest.FixedDeposits(),
			Loading:  true,
		})
		return
	}

	resp := suggestionsResponse{
		Funds:    funds,
		Deposits: invest.FixedDeposits(),
	}
	s.suggestionsCache.Set(suggestionsCacheKey, resp)
	writeJSON(w, http.StatusOK, resp)
}
