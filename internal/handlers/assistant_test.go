package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onemsu-server/internal/assistant"
)

func setupAssistantRouter(handler *AssistantHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.POST("/assistant/ask", handler.Ask)
	return r
}

func TestAskForwardsPrompt(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "where is the registrar", req.Prompt)
		json.NewEncoder(w).Encode(map[string]string{"reply": "second floor, admin building"})
	}))
	defer upstream.Close()

	handler := NewAssistantHandler(assistant.NewClient(upstream.URL))
	router := setupAssistantRouter(handler)

	body := bytes.NewBufferString(`{"prompt":"where is the registrar"}`)
	req := httptest.NewRequest(http.MethodPost, "/assistant/ask", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "second floor")
}

func TestAskDegradesWhenUnconfigured(t *testing.T) {
	handler := NewAssistantHandler(assistant.NewClient(""))
	router := setupAssistantRouter(handler)

	body := bytes.NewBufferString(`{"prompt":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/assistant/ask", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"degraded":true`)
	assert.Contains(t, rec.Body.String(), assistant.CannedReply)
}

func TestAskRequiresPrompt(t *testing.T) {
	handler := NewAssistantHandler(assistant.NewClient(""))
	router := setupAssistantRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/assistant/ask", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
