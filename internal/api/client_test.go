package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shiftdeck/internal/roster"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestCurrentScheduleDecodesAndNormalizes(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/schedule/current", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Errorf("missing request id header")
		}
		// One day with a single short slot list; the client pads to 8.
		_, _ = w.Write([]byte(`{
			"status": "success",
			"schedule": {
				"schedule_id": 41,
				"date_range": "2025-01-06 to 2025-01-10",
				"is_published": false,
				"days": [
					{"day": "Monday", "shifts": [
						{"assistants": [{"id": "816031001", "name": "Daniel Rasheed"}]}
					]}
				]
			}
		}`))
	})

	c := testClient(t, mux)
	sched, err := c.CurrentSchedule(context.Background())
	if err != nil {
		t.Fatalf("CurrentSchedule: %v", err)
	}
	if sched.ScheduleID != 41 || sched.Published {
		t.Fatalf("unexpected schedule meta: %+v", sched)
	}
	if got := len(sched.Days[0].Shifts); got != len(roster.TimeSlots) {
		t.Fatalf("expected normalized %d slots; got %d", len(roster.TimeSlots), got)
	}
	if !sched.Has(roster.Cell{Day: 0, Slot: 0}, "816031001") {
		t.Fatalf("decoded assignment missing")
	}
}

func TestCurrentScheduleNotFoundMeansNoSchedule(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/schedule/current", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "no schedule found"}`))
	})

	c := testClient(t, mux)
	_, err := c.CurrentSchedule(context.Background())
	if !errors.Is(err, ErrNoSchedule) {
		t.Fatalf("expected ErrNoSchedule; got %v", err)
	}
}

func TestServerMessageSurfacedVerbatim(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/schedule/generate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "end date must not be before start date"}`))
	})

	c := testClient(t, mux)
	_, err := c.GenerateSchedule(context.Background(), GenerateRequest{StartDate: "2025-01-10", EndDate: "2025-01-06"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := err.Error(); got != "end date must not be before start date" {
		t.Fatalf("message not verbatim: %q", got)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected *Error with 422; got %#v", err)
	}
}

func TestErrorWithoutMessageFallsBackToStatus(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/schedule/current", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>bad gateway page</html>`))
	})

	c := testClient(t, mux)
	_, err := c.CurrentSchedule(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := err.Error(); got != "request failed with status 500" {
		t.Fatalf("unexpected fallback message: %q", got)
	}
}

func TestSaveSchedulePostsFullSnapshot(t *testing.T) {
	t.Parallel()
	var captured SaveRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/api/schedule/save", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode save body: %v", err)
		}
		_, _ = w.Write([]byte(`{"status": "success", "schedule_id": 77}`))
	})

	sched := roster.New("", []string{"Monday", "Tuesday"})
	if err := sched.Assign(roster.Cell{Day: 0, Slot: 0}, roster.StaffRef{ID: "816031001", Name: "Daniel Rasheed"}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	c := testClient(t, mux)
	id, err := c.SaveSchedule(context.Background(), SaveRequest{
		StartDate:   "2025-01-06",
		EndDate:     "2025-01-10",
		Assignments: sched.CollectAssignments(),
	})
	if err != nil {
		t.Fatalf("SaveSchedule: %v", err)
	}
	if id != 77 {
		t.Fatalf("expected schedule id 77; got %d", id)
	}
	if captured.StartDate != "2025-01-06" || captured.EndDate != "2025-01-10" {
		t.Fatalf("dates not posted: %+v", captured)
	}
	if want := 2 * len(roster.TimeSlots); len(captured.Assignments) != want {
		t.Fatalf("expected %d assignment rows incl. empty cells; got %d", want, len(captured.Assignments))
	}
}

func TestPublishSchedulePickSyncVariant(t *testing.T) {
	t.Parallel()
	var paths []string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`{"status": "success"}`))
	})

	c := testClient(t, mux)
	if err := c.PublishSchedule(context.Background(), 9, false); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := c.PublishSchedule(context.Background(), 9, true); err != nil {
		t.Fatalf("publish with sync: %v", err)
	}
	if len(paths) != 2 || paths[0] != "/api/schedule/9/publish" || paths[1] != "/api/schedule/9/publish_with_sync" {
		t.Fatalf("unexpected publish paths: %v", paths)
	}
}

func TestCheckAvailabilityQuery(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/staff/check-availability", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("staff_id") != "816031001" || q.Get("day") != "Monday" || q.Get("time") != "9:00 am" {
			t.Errorf("unexpected query: %v", q)
		}
		_, _ = w.Write([]byte(`{"status": "success", "is_available": true}`))
	})

	c := testClient(t, mux)
	ok, err := c.CheckAvailability(context.Background(), "816031001", "Monday", "9:00 am")
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if !ok {
		t.Fatalf("expected available")
	}
}

func TestAvailableStaff(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/staff/available", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("day") != "Tuesday" || q.Get("time") != "1:00 pm" {
			t.Errorf("unexpected query: %v", q)
		}
		_, _ = w.Write([]byte(`{"staff": [{"id": "816031002", "name": "Amara Okafor"}]}`))
	})

	c := testClient(t, mux)
	staff, err := c.AvailableStaff(context.Background(), "Tuesday", "1:00 pm")
	if err != nil {
		t.Fatalf("AvailableStaff: %v", err)
	}
	if len(staff) != 1 || staff[0].Name != "Amara Okafor" {
		t.Fatalf("unexpected staff list: %v", staff)
	}
}

func TestNotificationEndpoints(t *testing.T) {
	t.Parallel()
	var gotPaths []string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/notifications", func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
		_, _ = w.Write([]byte(`{"notifications": [{"id": 3, "message": "Schedule published", "type": "info", "is_read": false, "created_at": "2025-01-06T09:00:00Z"}]}`))
	})
	mux.HandleFunc("/api/notifications/count", func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
		_, _ = w.Write([]byte(`{"count": 4}`))
	})
	mux.HandleFunc("/api/notifications/3/read", func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
		_, _ = w.Write([]byte(`{"status": "success"}`))
	})
	mux.HandleFunc("/api/notifications/read-all", func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
		_, _ = w.Write([]byte(`{"status": "success"}`))
	})
	mux.HandleFunc("/api/notifications/3", func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
		_, _ = w.Write([]byte(`{"status": "success"}`))
	})

	c := testClient(t, mux)
	ctx := context.Background()

	list, err := c.Notifications(ctx)
	if err != nil || len(list) != 1 || list[0].Message != "Schedule published" || list[0].Read {
		t.Fatalf("Notifications: %v %v", list, err)
	}
	n, err := c.NotificationCount(ctx)
	if err != nil || n != 4 {
		t.Fatalf("NotificationCount: %d %v", n, err)
	}
	if err := c.MarkNotificationRead(ctx, 3); err != nil {
		t.Fatalf("MarkNotificationRead: %v", err)
	}
	if err := c.MarkAllNotificationsRead(ctx); err != nil {
		t.Fatalf("MarkAllNotificationsRead: %v", err)
	}
	if err := c.DeleteNotification(ctx, 3); err != nil {
		t.Fatalf("DeleteNotification: %v", err)
	}

	want := []string{
		"GET /api/notifications",
		"GET /api/notifications/count",
		"POST /api/notifications/3/read",
		"POST /api/notifications/read-all",
		"DELETE /api/notifications/3",
	}
	if len(gotPaths) != len(want) {
		t.Fatalf("expected %d calls; got %v", len(want), gotPaths)
	}
	for i := range want {
		if gotPaths[i] != want[i] {
			t.Fatalf("call %d: expected %q; got %q", i, want[i], gotPaths[i])
		}
	}
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	t.Parallel()
	for _, bad := range []string{"", "not a url", "localhost:4000", "/relative"} {
		if _, err := New(bad); err == nil {
			t.Fatalf("expected error for base url %q", bad)
		}
	}
}
