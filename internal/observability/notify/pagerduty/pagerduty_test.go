package pagerduty

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workvortex/vortex-api/internal/observability/notify"
)

func TestNewClientValidation(t *testing.T) {
	t.Parallel()
	_, err := NewClient(Config{})
	require.Error(t, err)
}

func TestBuildEventDefaults(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{RoutingKey: "key", Timeout: time.Second})
	require.NoError(t, err)

	event := client.buildEvent(notify.Event{
		Kind:      notify.KindOrphanedBlob,
		SubjectID: "resumes/acct-1/x.pdf",
		Fields:    map[string]string{"bucket": "resumes", "kind": "ignored"},
	})

	payload, ok := event["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, notify.SeverityWarning, payload["severity"])
	assert.Equal(t, "vortex-api", payload["source"])
	assert.Equal(t, "orphaned_blob", payload["summary"])

	custom, ok := payload["custom_details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "orphaned_blob", custom["kind"], "fields do not override canonical keys")
	assert.Equal(t, "resumes", custom["bucket"])
	assert.Equal(t, "orphaned_blob:resumes/acct-1/x.pdf", event["dedup_key"])
}

func TestSendPostsEvent(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{RoutingKey: "rk"})
	require.NoError(t, err)
	client.endpoint = srv.URL

	require.NoError(t, client.Send(context.Background(), notify.Event{Kind: notify.KindOrphanedBlob, Severity: notify.SeverityCritical}))
	assert.Equal(t, "rk", got["routing_key"])
}
