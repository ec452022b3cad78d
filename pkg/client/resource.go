package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// resourceService provides common request plumbing for API resources
type resourceService struct {
	client       *Client
	baseURL      string
	resourceName string // for error messages, e.g., "deployment", "plan"
}

// newResourceService creates a new resource service
func newResourceService(client *Client, endpoint, resourceName string) *resourceService {
	return &resourceService{
		client:       client,
		baseURL:      fmt.Sprintf("%s/api/v1/%s", client.baseURL, endpoint),
		resourceName: resourceName,
	}
}

// list retrieves the resource collection, optionally filtered by query params
func (s *resourceService) list(ctx context.Context, params url.Values, result interface{}) error {
	u := s.baseURL
	if len(params) > 0 {
		u = s.baseURL + "?" + params.Encode()
	}

	return s.roundTrip(ctx, http.MethodGet, u, nil, result, http.StatusOK)
}

// get retrieves a single resource by id
func (s *resourceService) get(ctx context.Context, id string, result interface{}) error {
	if id == "" {
		return fmt.Errorf("%s id cannot be empty", s.resourceName)
	}

	return s.roundTrip(ctx, http.MethodGet, s.baseURL+"/"+url.PathEscape(id), nil, result, http.StatusOK)
}

// create creates a new resource
func (s *resourceService) create(ctx context.Context, data, result interface{}) error {
	return s.roundTrip(ctx, http.MethodPost, s.baseURL, data, result, http.StatusOK, http.StatusCreated)
}

// update updates an existing resource by id
func (s *resourceService) update(ctx context.Context, id string, data, result interface{}) error {
	if id == "" {
		return fmt.Errorf("%s id cannot be empty", s.resourceName)
	}

	return s.roundTrip(ctx, http.MethodPatch, s.baseURL+"/"+url.PathEscape(id), data, result, http.StatusOK, http.StatusNoContent)
}

// delete removes a resource by id
func (s *resourceService) delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%s id cannot be empty", s.resourceName)
	}

	return s.roundTrip(ctx, http.MethodDelete, s.baseURL+"/"+url.PathEscape(id), nil, nil, http.StatusOK, http.StatusNoContent)
}

// action POSTs to a sub-resource verb such as /deployments/{id}/start
func (s *resourceService) action(ctx context.Context, id, verb string, result interface{}) error {
	if id == "" {
		return fmt.Errorf("%s id cannot be empty", s.resourceName)
	}

	u := s.baseURL + "/" + url.PathEscape(id) + "/" + verb

	return s.roundTrip(ctx, http.MethodPost, u, nil, result, http.StatusOK, http.StatusAccepted, http.StatusNoContent)
}

// subresource GETs a sub-resource such as /deployments/{id}/status
func (s *resourceService) subresource(ctx context.Context, id, name string, result interface{}) error {
	if id == "" {
		return fmt.Errorf("%s id cannot be empty", s.resourceName)
	}

	u := s.baseURL + "/" + url.PathEscape(id) + "/" + name

	return s.roundTrip(ctx, http.MethodGet, u, nil, result, http.StatusOK)
}

func (s *resourceService) roundTrip(ctx context.Context, method, u string, body, result interface{}, okStatuses ...int) error {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}

		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	ok := false

	for _, status := range okStatuses {
		if resp.StatusCode == status {
			ok = true
			break
		}
	}

	if !ok {
		return responseError(resp)
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(result)
}
