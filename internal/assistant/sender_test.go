package assistant_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"folio-go/internal/assistant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() assistant.ContactSubmission {
	return assistant.ContactSubmission{
		Name:    "Jane",
		Email:   "jane@example.com",
		Message: "Hello there",
	}
}

func TestHTTPSenderPostsJSONOnce(t *testing.T) {
	var calls int32
	var gotContentType string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := assistant.NewHTTPSender(server.URL)
	err := sender.Send(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Jane", gotBody["name"])
	assert.Equal(t, "jane@example.com", gotBody["email"])
	// 主题为空时使用固定默认值
	assert.Equal(t, assistant.DefaultSubject, gotBody["subject"])
}

func TestHTTPSenderValidationFailureSkipsNetwork(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	sender := assistant.NewHTTPSender(server.URL)

	sub := validSubmission()
	sub.Email = "user@"
	err := sender.Send(context.Background(), sub)

	var verr *assistant.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestHTTPSenderServerRejectedWithErrorBody(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "message too long"})
	}))
	defer server.Close()

	sender := assistant.NewHTTPSender(server.URL)
	err := sender.Send(context.Background(), validSubmission())

	var rejected *assistant.ServerRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusUnprocessableEntity, rejected.StatusCode)
	assert.Equal(t, "message too long", rejected.Message)
	// 拒绝后不重试
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHTTPSenderServerRejectedWithoutBodyUsesFallbackText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sender := assistant.NewHTTPSender(server.URL)
	err := sender.Send(context.Background(), validSubmission())

	var rejected *assistant.ServerRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.NotEmpty(t, rejected.Message)
}

func TestHTTPSenderNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // 立即关闭以制造传输层错误

	sender := assistant.NewHTTPSender(server.URL)
	err := sender.Send(context.Background(), validSubmission())

	var netErr *assistant.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.False(t, errors.As(err, new(*assistant.ServerRejectedError)))
}
