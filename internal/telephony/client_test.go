package telephony

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSID   = "AC123"
	testToken = "token"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Options{
		BaseURL:    srv.URL,
		AccountSID: testSID,
		AuthToken:  testToken,
		Timeout:    time.Second,
	}, zerolog.Nop())
	require.NoError(t, err)
	return client
}

func checkAuth(t *testing.T, r *http.Request) {
	t.Helper()
	user, pass, ok := r.BasicAuth()
	assert.True(t, ok, "basic auth expected")
	assert.Equal(t, testSID, user)
	assert.Equal(t, testToken, pass)
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(Options{BaseURL: "https://api.twilio.com"}, zerolog.Nop())
	assert.Error(t, err)

	_, err = NewClient(Options{AccountSID: "AC1", AuthToken: "x"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestListCalls(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		checkAuth(t, r)
		assert.Equal(t, "/2010-04-01/Accounts/AC123/Calls.json", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("PageSize"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"calls": [
			{"sid": "CA1", "from": "+14155550100", "to": "+14155550199",
			 "from_formatted": "(415) 555-0100", "to_formatted": "(415) 555-0199",
			 "start_time": "Sat, 09 Mar 2024 14:05:09 +0000", "duration": "125", "status": "completed"},
			{"sid": "CA2", "from": "+14155550101", "to": "+14155550199",
			 "start_time": null, "duration": null, "status": "queued"},
			{"sid": "CA3", "status": "busy"}
		]}`))
	})

	calls, err := client.ListCalls(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, calls, 2, "result is truncated to the limit")

	assert.Equal(t, "CA1", calls[0].SID)
	assert.Equal(t, "(415) 555-0100", calls[0].FromFormatted)
	require.NotNil(t, calls[0].StartTime)
	assert.True(t, calls[0].StartTime.Equal(time.Date(2024, 3, 9, 14, 5, 9, 0, time.UTC)))
	require.NotNil(t, calls[0].Duration)
	assert.Equal(t, 125, *calls[0].Duration)

	assert.Nil(t, calls[1].StartTime)
	assert.Nil(t, calls[1].Duration)
	assert.Equal(t, "queued", calls[1].Status)
}

func TestListRecordings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		checkAuth(t, r)
		assert.Equal(t, "/2010-04-01/Accounts/AC123/Recordings.json", r.URL.Path)
		w.Write([]byte(`{"recordings": [
			{"sid": "RE1", "call_sid": "CA1", "date_created": "Sat, 09 Mar 2024 23:59:00 +0000",
			 "duration": "65", "uri": "/2010-04-01/Accounts/AC123/Recordings/RE1.json"}
		]}`))
	})

	recs, err := client.ListRecordings(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "CA1", recs[0].CallSID)
	assert.Equal(t, "2024-03-09", recs[0].DateCreated.Format("2006-01-02"))
	require.NotNil(t, recs[0].Duration)
	assert.Equal(t, 65, *recs[0].Duration)
	assert.Equal(t, "/2010-04-01/Accounts/AC123/Recordings/RE1.json", recs[0].URI)
}

func TestGetCall(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		checkAuth(t, r)
		assert.Equal(t, "/2010-04-01/Accounts/AC123/Calls/CA9.json", r.URL.Path)
		w.Write([]byte(`{"sid": "CA9", "from_formatted": "(415) 555-0100", "duration": 42}`))
	})

	call, err := client.GetCall(context.Background(), "CA9")

	require.NoError(t, err)
	assert.Equal(t, "(415) 555-0100", call.Caller())
	require.NotNil(t, call.Duration)
	assert.Equal(t, 42, *call.Duration)
}

func TestGetCallEmptySID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.GetCall(context.Background(), "")
	assert.Error(t, err)
}

func TestAPIErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		isNotFound bool
	}{
		{
			name:       "not found envelope",
			status:     http.StatusNotFound,
			body:       `{"code": 20404, "message": "The requested resource was not found", "status": 404}`,
			wantMsg:    "telephony: status 404 code 20404: The requested resource was not found",
			isNotFound: true,
		},
		{
			name:    "auth failure",
			status:  http.StatusUnauthorized,
			body:    `{"code": 20003, "message": "Authenticate", "status": 401}`,
			wantMsg: "telephony: status 401 code 20003: Authenticate",
		},
		{
			name:    "plain text body",
			status:  http.StatusBadGateway,
			body:    "upstream down\n",
			wantMsg: "telephony: status 502: upstream down",
		},
		{
			name:    "empty body",
			status:  http.StatusServiceUnavailable,
			wantMsg: "telephony: status 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.GetCall(context.Background(), "CA1")
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Error())
			assert.Equal(t, tt.isNotFound, errors.Is(err, ErrNotFound))
		})
	}
}

func TestMalformedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"calls": [{"sid": "CA1", "duration": "abc"}]}`))
	})

	_, err := client.ListCalls(context.Background(), 5)
	assert.Error(t, err)
}

func TestContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"calls": []}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListCalls(ctx, 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMediaBaseURL(t *testing.T) {
	client, err := NewClient(Options{BaseURL: "https://api.twilio.com/", AccountSID: "AC1", AuthToken: "x"}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "https://api.twilio.com", client.MediaBaseURL())
}
