package mailer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
)

func TestDispatchNotice(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	msg, err := DispatchNotice("ops@example.com", "agg@example.com", at, entity.Dispatch{
		ID: "d-1", AggregatorID: "agg-1", BuyerID: "<buyer>", TotalTonnes: 12.5,
	})
	require.NoError(t, err)

	assert.Equal(t, "ops@example.com", msg.To)
	assert.Equal(t, "Dispatch d-1: 12.50 t to <buyer>", msg.Subject)
	assert.Contains(t, msg.Text, "Tonnes:      12.50")
	assert.Contains(t, msg.Text, "Recorded by: agg@example.com")
	assert.Contains(t, msg.Text, "Sun, 01 Mar 2026 09:30:00 UTC")
	assert.Contains(t, msg.HTML, "&lt;buyer&gt;", "html body is escaped")
}

func TestMailgunSend(t *testing.T) {
	var form map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/mg.example.com/messages") {
			http.NotFound(w, r)
			return
		}
		_ = r.ParseMultipartForm(1 << 20)
		if r.MultipartForm != nil {
			form = r.MultipartForm.Value
		} else {
			form = r.PostForm
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"<abc@mg.example.com>","message":"Queued. Thank you."}`))
	}))
	defer srv.Close()

	m := NewMailgun("mg.example.com", "key-test", "RupayKg <noreply@mg.example.com>").WithAPIBase(srv.URL + "/v3")
	id, err := m.Send(context.Background(), Message{To: "ops@example.com", Subject: "hello", Text: "body", HTML: "<p>body</p>"})
	require.NoError(t, err)
	assert.Equal(t, "<abc@mg.example.com>", id)
	assert.Equal(t, []string{"ops@example.com"}, form["to"])
	assert.Equal(t, []string{"hello"}, form["subject"])
	assert.Equal(t, []string{"<p>body</p>"}, form["html"])
}
