package portalclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"go-leaveflow/internal/leave"
)

var (
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
	ErrLeaveImmutable          = errors.New("leave application is already decided")
)

// LeaveWorkflow drives the leave screens. Every successful mutation is
// followed by a fresh fetch of the collection last listed.
type LeaveWorkflow struct {
	client *Client

	mu     sync.Mutex
	filter leave.ListFilter
}

func NewLeaveWorkflow(client *Client) *LeaveWorkflow {
	return &LeaveWorkflow{client: client}
}

func (w *LeaveWorkflow) List(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveResponse, error) {
	w.mu.Lock()
	w.filter = filter
	w.mu.Unlock()
	return w.fetch(ctx, filter)
}

func (w *LeaveWorkflow) fetch(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveResponse, error) {
	q := url.Values{}
	if filter.NationalID != "" {
		q.Set("nationalId", filter.NationalID)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(filter.PageSize))
	}
	path := "/leave"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	items := []leave.LeaveResponse{}
	if _, err := w.client.Do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (w *LeaveWorkflow) refresh(ctx context.Context) ([]leave.LeaveResponse, error) {
	w.mu.Lock()
	filter := w.filter
	w.mu.Unlock()
	return w.fetch(ctx, filter)
}

func (w *LeaveWorkflow) Get(ctx context.Context, id string) (leave.LeaveResponse, error) {
	var out leave.LeaveResponse
	_, err := w.client.Do(ctx, http.MethodGet, "/leave/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (w *LeaveWorkflow) Submit(ctx context.Context, req leave.LeaveRequest) ([]leave.LeaveResponse, error) {
	if _, err := w.client.Do(ctx, http.MethodPost, "/leave", req, nil); err != nil {
		return nil, err
	}
	return w.refresh(ctx)
}

// Edit refuses decided records without calling the API.
func (w *LeaveWorkflow) Edit(ctx context.Context, current leave.LeaveResponse, req leave.LeaveRequest) ([]leave.LeaveResponse, error) {
	if !leave.CanEdit(leave.Status(current.Status)) {
		return nil, ErrLeaveImmutable
	}
	if _, err := w.client.Do(ctx, http.MethodPut, "/leave/"+url.PathEscape(current.ID), req, nil); err != nil {
		return nil, err
	}
	return w.refresh(ctx)
}

func (w *LeaveWorkflow) Delete(ctx context.Context, current leave.LeaveResponse) ([]leave.LeaveResponse, error) {
	if !leave.CanDelete(leave.Status(current.Status)) {
		return nil, ErrLeaveImmutable
	}
	if _, err := w.client.Do(ctx, http.MethodDelete, "/leave/"+url.PathEscape(current.ID), nil, nil); err != nil {
		return nil, err
	}
	return w.refresh(ctx)
}

func (w *LeaveWorkflow) Approve(ctx context.Context, id string) ([]leave.LeaveResponse, error) {
	if _, err := w.client.Do(ctx, http.MethodPut, "/leave/"+url.PathEscape(id)+"/approve", nil, nil); err != nil {
		return nil, err
	}
	return w.refresh(ctx)
}

// Reject needs a non-blank reason before anything is sent.
func (w *LeaveWorkflow) Reject(ctx context.Context, id, reason string) ([]leave.LeaveResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrRejectionReasonRequired
	}
	if _, err := w.client.Do(ctx, http.MethodPut, "/leave/"+url.PathEscape(id)+"/reject", leave.RejectRequest{Reason: reason}, nil); err != nil {
		return nil, err
	}
	return w.refresh(ctx)
}
