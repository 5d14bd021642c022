package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"eventdeck/pkg/api"
	"github.com/stretchr/testify/assert"
)

// fakeServer is an in-memory stand-in for the events service covering the
// endpoints the client uses.
type fakeServer struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]map[string]interface{}
}

func newFakeServer() *fakeServer {
	return &fakeServer{nextID: 1, events: map[int64]map[string]interface{}{}}
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/events", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if r.Method == http.MethodPost {
			var input map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&input)

			input["id"] = f.nextID
			input["status"] = "active"
			input["created_at"] = time.Now().Format("2006-01-02 15:04:05")
			input["last_modified"] = input["created_at"]
			f.events[f.nextID] = input
			f.nextID++

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(input)

			return
		}

		status := r.URL.Query().Get("status")
		list := []map[string]interface{}{}

		for _, ev := range f.events {
			if status == "all" || ev["status"] == status {
				list = append(list, ev)
			}
		}

		_ = json.NewEncoder(w).Encode(list)
	})

	mux.HandleFunc("/api/v1/events/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		id, tail := splitEventPath(r.URL.Path)

		ev, ok := f.events[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Event not found"})

			return
		}

		switch {
		case tail == "actions":
			_ = json.NewEncoder(w).Encode([]map[string]interface{}{
				{
					"id": 1, "event_id": id, "action_type": "complete",
					"action_time": "2024-03-01 10:00:00", "comment": "done early",
				},
			})
		case tail == "complete":
			ev["status"] = "completed"
			_ = json.NewEncoder(w).Encode(ev)
		case tail == "reopen":
			ev["status"] = "active"
			_ = json.NewEncoder(w).Encode(ev)
		case r.Method == http.MethodDelete:
			ev["status"] = "deleted"
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Event deleted successfully"})
		case r.Method == http.MethodPut:
			var input map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&input)

			for k, v := range input {
				ev[k] = v
			}

			_ = json.NewEncoder(w).Encode(ev)
		default:
			_ = json.NewEncoder(w).Encode(ev)
		}
	})

	mux.HandleFunc("/api/v1/getLine", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "have a nice day"})
	})

	return mux
}

// splitEventPath pulls the id and optional action suffix out of
// /api/v1/events/{id}[/{tail}].
func splitEventPath(path string) (int64, string) {
	rest := strings.TrimPrefix(path, "/api/v1/events/")
	rest, tail, _ := strings.Cut(rest, "/")
	id, _ := strconv.ParseInt(rest, 10, 64)

	return id, tail
}

func getClient(t *testing.T) *api.Client {
	t.Helper()

	server := httptest.NewServer(newFakeServer().handler())
	t.Cleanup(server.Close)

	return api.NewClient(server.URL)
}

func addEvent(assert *assert.Assertions, client *api.Client) *api.Event {
	due := time.Now().Add(48 * time.Hour).Format("2006-01-02T15:04")
	event, err := client.CreateEvent(context.Background(), api.EventInput{
		Title:       "write the report",
		Description: "quarterly numbers for the team",
		DueAt:       due,
		Priority:    api.PriorityHigh,
	})
	assert.Nil(err)
	assert.NotNil(event)

	return event
}

func TestCreateAndGetEventRoundTrip(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	client := getClient(t)

	created := addEvent(assert, client)
	assert.Equal(api.StatusActive, created.Status)

	fetched, err := client.GetEvent(context.Background(), created.ID)
	assert.Nil(err)
	assert.Equal(created.Title, fetched.Title)
	assert.Equal(created.Description, fetched.Description)
	assert.Equal(created.Priority, fetched.Priority)
	assert.True(created.DueAt.Equal(fetched.DueAt.Time))
}

func TestListEventsFilters(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	client := getClient(t)

	first := addEvent(assert, client)
	addEvent(assert, client)

	_, err := client.CompleteEvent(context.Background(), first.ID, "")
	assert.Nil(err)

	active, err := client.ListEvents(context.Background(), api.StatusActive)
	assert.Nil(err)
	assert.Len(active, 1)

	completed, err := client.ListEvents(context.Background(), api.StatusCompleted)
	assert.Nil(err)
	assert.Len(completed, 1)

	all, err := client.ListEvents(context.Background(), api.StatusAll)
	assert.Nil(err)
	assert.Len(all, 2)
}

func TestCompleteAndReopen(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	client := getClient(t)
	event := addEvent(assert, client)

	completed, err := client.CompleteEvent(context.Background(), event.ID, "make-up completion")
	assert.Nil(err)
	assert.Equal(api.StatusCompleted, completed.Status)

	reopened, err := client.ReopenEvent(context.Background(), event.ID)
	assert.Nil(err)
	assert.Equal(api.StatusActive, reopened.Status)
}

func TestListActions(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	client := getClient(t)
	event := addEvent(assert, client)

	actions, err := client.ListActions(context.Background(), event.ID)
	assert.Nil(err)
	assert.Len(actions, 1)
	assert.Equal(api.ActionComplete, actions[0].Type)
	assert.Equal("done early", actions[0].Comment)
	assert.False(actions[0].Time.IsZero())
}

func TestDeleteEvent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	client := getClient(t)
	event := addEvent(assert, client)

	err := client.DeleteEvent(context.Background(), event.ID)
	assert.Nil(err)

	active, err := client.ListEvents(context.Background(), api.StatusActive)
	assert.Nil(err)
	assert.Len(active, 0)
}

func TestGetLine(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	client := getClient(t)

	text, err := client.GetLine(context.Background())
	assert.Nil(err)
	assert.Equal("have a nice day", text)
}

func TestErrorsAreFlat(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	client := getClient(t)

	_, err := client.GetEvent(context.Background(), 999)
	assert.NotNil(err)
	assert.Equal("GET /events/999 returned status 404", err.Error())
}

func TestTimestampLayouts(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	for _, raw := range []string{
		`"2024-03-15T10:30:00Z"`,
		`"2024-03-15T10:30:00"`,
		`"2024-03-15 10:30:00"`,
		`"2024-03-15T10:30"`,
	} {
		var ts api.Time

		err := json.Unmarshal([]byte(raw), &ts)
		assert.Nil(err)
		assert.Equal(2024, ts.Year())
		assert.Equal(time.March, ts.Month())
		assert.Equal(15, ts.Day())
	}

	var ts api.Time

	err := json.Unmarshal([]byte(`"yesterday-ish"`), &ts)
	assert.NotNil(err)
}
