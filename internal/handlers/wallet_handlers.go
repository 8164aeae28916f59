package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/voyago/travelbook/internal/domain"
	"github.com/voyago/travelbook/internal/http/response"
)

type walletView struct {
	*domain.Wallet
	FormattedBalance string `json:"formatted_balance"`
}

// GetWallet handles GET /wallet. An optional ?locale= tag controls the
// display formatting of the balance.
func (h *Handlers) GetWallet(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	wallet, err := h.walletService.Get(r.Context(), claims.Sub)
	if err != nil {
		serviceError(w, err)
		return
	}

	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = h.config.Locale.Default
	}
	tag := domain.ParseLocale(locale)

	writeJSON(w, http.StatusOK, walletView{
		Wallet:           wallet,
		FormattedBalance: h.walletService.FormattedBalance(wallet, tag),
	})
}

// TopUpWallet handles POST /wallet/topup
func (h *Handlers) TopUpWallet(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req domain.TopUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	wallet, err := h.walletService.Add(r.Context(), claims.Sub, req.Amount)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, wallet)
}
