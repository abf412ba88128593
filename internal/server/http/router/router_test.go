package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/flashrescue/internal/domain/model"
	"github.com/polkiloo/flashrescue/internal/server/http/handlers"
	testhelpers "github.com/polkiloo/flashrescue/internal/test"
)

func serve(engine *gin.Engine, method, target, token string, body []byte) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.NewMarketFacadeStub()
	var claimant string
	facade.ClaimFn = func(_ context.Context, id, who string) (*model.ClaimResult, error) {
		claimant = who
		return &model.ClaimResult{Listing: model.Listing{ID: id, Status: model.ListingStatusClaimed, ClaimedBy: who}, OTP: "1111"}, nil
	}
	engine := Setup(facade, logger)

	cases := []struct {
		name   string
		method string
		target string
		token  string
		body   []byte
		status int
	}{
		{"health", http.MethodGet, "/health", "", nil, http.StatusOK},
		{"feed is public", http.MethodGet, "/api/listings?category=bakery", "", nil, http.StatusOK},
		{"clusters are public", http.MethodGet, "/api/listings/clusters", "", nil, http.StatusOK},
		{"public stats", http.MethodGet, "/api/users/donor-1/stats", "", nil, http.StatusOK},
		{"create needs auth", http.MethodPost, "/api/listings", "", []byte(`{}`), http.StatusUnauthorized},
		{"create rejects bad token", http.MethodPost, "/api/listings", "admin", []byte(`{}`), http.StatusUnauthorized},
		{"create by donor", http.MethodPost, "/api/listings", "donor", []byte(`{"name":"Soup"}`), http.StatusCreated},
		{"create by consumer", http.MethodPost, "/api/listings", "consumer", []byte(`{"name":"Soup"}`), http.StatusForbidden},
		{"collect by organization", http.MethodPost, "/api/listings/collect", "organization", []byte(`{"listingIds":["a"]}`), http.StatusOK},
		{"collect by donor", http.MethodPost, "/api/listings/collect", "donor", []byte(`{"listingIds":["a"]}`), http.StatusForbidden},
		{"claim by consumer", http.MethodPost, "/api/listings/l1/claim", "consumer", nil, http.StatusOK},
		{"claim by donor", http.MethodPost, "/api/listings/l1/claim", "donor", nil, http.StatusOK},
		{"claim by organization", http.MethodPost, "/api/listings/l1/claim", "organization", nil, http.StatusForbidden},
		{"profile needs auth", http.MethodPut, "/api/user/profile", "", []byte(`{"name":"A"}`), http.StatusUnauthorized},
		{"profile", http.MethodPut, "/api/user/profile", "consumer", []byte(`{"name":"A"}`), http.StatusOK},
		{"own stats", http.MethodGet, "/api/user/stats", "organization", nil, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := serve(engine, tc.method, tc.target, tc.token, tc.body)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, resp.Code, resp.Body.String())
			}
		})
	}

	resp := serve(engine, http.MethodPost, "/api/listings/l9/claim", "consumer", nil)
	var claim map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &claim); err != nil {
		t.Fatalf("decode claim: %v", err)
	}
	if claimant != "consumer-1" || claim["otp"] != "1111" || claim["message"] != "Listing claimed successfully" {
		t.Fatalf("unexpected claim claimant=%q body=%v", claimant, claim)
	}
}

func TestSetupHealthUnavailable(t *testing.T) {
	facade := testhelpers.NewMarketFacadeStub()
	facade.HealthFacadeStub.Err = context.DeadlineExceeded
	engine := Setup(facade, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	resp := serve(engine, http.MethodGet, "/health", "", nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

var _ handlers.MarketFacade = testhelpers.MarketFacadeStub{}
