package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"shiftdeck/internal/roster"
)

type scheduleEnvelope struct {
	Status   string           `json:"status"`
	Schedule *roster.Schedule `json:"schedule"`
}

// CurrentSchedule loads the draft or published schedule. A 404 from the
// server means no schedule exists yet and maps to ErrNoSchedule.
func (c *Client) CurrentSchedule(ctx context.Context) (*roster.Schedule, error) {
	var env scheduleEnvelope
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/schedule/current", nil, nil, &env); err != nil {
		if IsNotFound(err) {
			return nil, ErrNoSchedule
		}
		return nil, err
	}
	if env.Schedule == nil {
		return nil, fmt.Errorf("schedule response missing schedule body")
	}
	env.Schedule.Normalize()
	return env.Schedule, nil
}

// ScheduleDetails carries the extra metadata the details endpoint returns.
type ScheduleDetails struct {
	IsFullWeek bool `json:"is_full_week"`
}

type detailsEnvelope struct {
	Status   string           `json:"status"`
	Schedule *roster.Schedule `json:"schedule"`
	Details  ScheduleDetails  `json:"details"`
}

// Schedule loads a specific generated schedule by id.
func (c *Client) Schedule(ctx context.Context, id int64) (*roster.Schedule, ScheduleDetails, error) {
	query := url.Values{"id": {strconv.FormatInt(id, 10)}}
	var env detailsEnvelope
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/schedule/details", query, nil, &env); err != nil {
		return nil, ScheduleDetails{}, err
	}
	if env.Schedule == nil {
		return nil, ScheduleDetails{}, fmt.Errorf("schedule response missing schedule body")
	}
	env.Schedule.Normalize()
	return env.Schedule, env.Details, nil
}

// GenerateRequest asks the server to build a schedule for a date span.
// Dates are ISO format, YYYY-MM-DD.
type GenerateRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type generateResponse struct {
	Status     string `json:"status"`
	ScheduleID int64  `json:"schedule_id"`
}

// GenerateSchedule triggers server-side generation and returns the new id.
func (c *Client) GenerateSchedule(ctx context.Context, req GenerateRequest) (int64, error) {
	var out generateResponse
	if _, err := c.doJSON(ctx, http.MethodPost, "/api/schedule/generate", nil, req, &out); err != nil {
		return 0, err
	}
	return out.ScheduleID, nil
}

// SaveRequest persists a full grid snapshot, one assignment entry per cell.
type SaveRequest struct {
	StartDate   string              `json:"start_date"`
	EndDate     string              `json:"end_date"`
	Assignments []roster.Assignment `json:"assignments"`
}

type saveResponse struct {
	Status     string `json:"status"`
	ScheduleID int64  `json:"schedule_id"`
}

// SaveSchedule POSTs the snapshot. The returned id is 0 when the server
// omits it.
func (c *Client) SaveSchedule(ctx context.Context, req SaveRequest) (int64, error) {
	var out saveResponse
	if _, err := c.doJSON(ctx, http.MethodPost, "/api/schedule/save", nil, req, &out); err != nil {
		return 0, err
	}
	return out.ScheduleID, nil
}

// PublishSchedule finalizes a schedule. withSync picks the variant that also
// pushes the published roster to the staff calendar feed.
func (c *Client) PublishSchedule(ctx context.Context, id int64, withSync bool) error {
	path := fmt.Sprintf("/api/schedule/%d/publish", id)
	if withSync {
		path = fmt.Sprintf("/api/schedule/%d/publish_with_sync", id)
	}
	_, err := c.doJSON(ctx, http.MethodPost, path, nil, nil, nil)
	return err
}
