package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/agentdeck/agentdeck/api/v1"
)

func TestBillingService_ListPlans(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/billing/plans", r.URL.Path)

		_ = json.NewEncoder(w).Encode([]v1.Plan{
			{ID: "starter", Name: "Starter", PriceCents: 900, Interval: v1.PlanIntervalMonth},
			{ID: "pro", Name: "Pro", PriceCents: 4900, Interval: v1.PlanIntervalMonth},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL)

	plans, err := c.Billing.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "starter", plans[0].ID)
}

func TestBillingService_CreateCheckoutSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/billing/checkout", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "pro", req["plan_id"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(v1.CheckoutSession{ID: "cs_1", URL: "https://pay.example.com/cs_1"})
	}))
	defer server.Close()

	c := NewClient(server.URL)

	checkout, err := c.Billing.CreateCheckoutSession(context.Background(), "pro")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/cs_1", checkout.URL)
}

func TestBillingService_CreateCheckoutSessionEmptyPlan(t *testing.T) {
	c := NewClient("http://unused")

	_, err := c.Billing.CreateCheckoutSession(context.Background(), "")
	assert.Error(t, err)
}
