package client

import (
	"context"
	"fmt"
	"net/http"

	v1 "github.com/agentdeck/agentdeck/api/v1"
)

// BillingService handles communication with the billing endpoints
type BillingService struct {
	client   *Client
	resource *resourceService
}

// NewBillingService creates a new billing service
func NewBillingService(client *Client) *BillingService {
	return &BillingService{
		client:   client,
		resource: newResourceService(client, "billing", "billing"),
	}
}

// ListPlans lists the available subscription plans
func (s *BillingService) ListPlans(ctx context.Context) ([]v1.Plan, error) {
	var plans []v1.Plan

	err := s.resource.roundTrip(ctx, http.MethodGet, s.resource.baseURL+"/plans",
		nil, &plans, http.StatusOK)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

// GetSubscription returns the authenticated user's current subscription, if any
func (s *BillingService) GetSubscription(ctx context.Context) (*v1.Subscription, error) {
	var sub v1.Subscription

	err := s.resource.roundTrip(ctx, http.MethodGet, s.resource.baseURL+"/subscription",
		nil, &sub, http.StatusOK)
	if err != nil {
		return nil, err
	}

	return &sub, nil
}

type checkoutRequest struct {
	PlanID string `json:"plan_id"`
}

// CreateCheckoutSession asks the backend for a hosted checkout URL for the
// given plan. The payment widget itself is the provider's, not ours.
func (s *BillingService) CreateCheckoutSession(ctx context.Context, planID string) (*v1.CheckoutSession, error) {
	if planID == "" {
		return nil, fmt.Errorf("plan id cannot be empty")
	}

	var session v1.CheckoutSession

	err := s.resource.roundTrip(ctx, http.MethodPost, s.resource.baseURL+"/checkout",
		checkoutRequest{PlanID: planID}, &session, http.StatusOK, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	return &session, nil
}
