package api

import (
	"context"
	"net/http"
	"net/url"

	"shiftdeck/internal/roster"
)

type staffListResponse struct {
	Staff []roster.StaffRef `json:"staff"`
}

// AvailableStaff lists staff free at one (day, time) slot.
func (c *Client) AvailableStaff(ctx context.Context, day, timeSlot string) ([]roster.StaffRef, error) {
	query := url.Values{"day": {day}, "time": {timeSlot}}
	var out staffListResponse
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/staff/available", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Staff, nil
}

// ListStaff returns the full roster for the legend pane. Callers fall back
// to roster.DefaultLegend when this fails.
func (c *Client) ListStaff(ctx context.Context) ([]roster.StaffRef, error) {
	var out staffListResponse
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/staff", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Staff, nil
}

type checkAvailabilityResponse struct {
	Status      string `json:"status"`
	IsAvailable bool   `json:"is_available"`
}

// CheckAvailability asks whether one staff member is free at one slot. It
// reports the raw server answer; fail-open defaulting belongs to the
// availability cache, not here.
func (c *Client) CheckAvailability(ctx context.Context, staffID, day, timeSlot string) (bool, error) {
	query := url.Values{"staff_id": {staffID}, "day": {day}, "time": {timeSlot}}
	var out checkAvailabilityResponse
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/staff/check-availability", query, nil, &out); err != nil {
		return false, err
	}
	return out.IsAvailable, nil
}
