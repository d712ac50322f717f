package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"repurpose/internal/content"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// platformKeys returns the keys of a JSON object in document order
func platformKeys(t *testing.T, raw json.RawMessage) []string {
	t.Helper()
	var res struct {
		Platforms json.RawMessage `json:"platforms"`
	}
	require.NoError(t, json.Unmarshal(raw, &res))

	dec := json.NewDecoder(bytesReader(res.Platforms))
	tok, err := dec.Token()
	require.NoError(t, err)
	require.Equal(t, json.Delim('{'), tok)

	var keys []string
	for dec.More() {
		k, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, k.(string))
		var v string
		require.NoError(t, dec.Decode(&v))
	}
	return keys
}

func TestGenerateContent(t *testing.T) {
	e := newTestEnv(t)
	token, userID := e.signup(t, "gen@example.com")

	w, env := e.do(t, http.MethodPost, "/generate-content", token, gin.H{
		"transcript": "We talked about strategy and growth.",
		"platforms":  []string{"twitter", "myspace", "linkedin"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"twitter", "linkedin"}, platformKeys(t, env.Data))

	var res content.GenerateResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, userID, res.UserID)
	assert.Equal(t, []string{"Strategy", "Growth"}, res.Themes)
	assert.Equal(t, "coaching", res.Metadata.Profession)
	assert.Equal(t, "professional", res.Metadata.Tone)
}

func TestGenerateContent_DefaultPlatforms(t *testing.T) {
	e := newTestEnv(t)
	token, _ := e.signup(t, "def@example.com")

	w, env := e.do(t, http.MethodPost, "/generate-content", token, gin.H{"transcript": "customer value"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"linkedin", "twitter", "email"}, platformKeys(t, env.Data))
}

func TestGenerateContent_Validation(t *testing.T) {
	e := newTestEnv(t)
	token, _ := e.signup(t, "val@example.com")

	w, env := e.do(t, http.MethodPost, "/generate-content", token, gin.H{"transcript": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)

	w, _ = e.do(t, http.MethodPost, "/generate-content", token, gin.H{"transcript": "hello", "platforms": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = e.do(t, http.MethodPost, "/generate-content", token, gin.H{"transcript": "hello", "platforms": []string{"myspace"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = e.do(t, http.MethodPost, "/generate-content", "", gin.H{"transcript": "hello"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetProfessionAffectsGeneration(t *testing.T) {
	e := newTestEnv(t)
	token, userID := e.signup(t, "prof@example.com")

	w, env := e.do(t, http.MethodPost, "/profession", token, gin.H{"profession": "astronaut"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid profession", env.Error)

	w, env = e.do(t, http.MethodPost, "/profession", token, gin.H{"profession": "sales"})
	require.Equal(t, http.StatusOK, w.Code)
	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, userID, data["userId"])
	assert.Equal(t, "sales", data["profession"])

	w, env = e.do(t, http.MethodPost, "/generate-content", token, gin.H{"transcript": "results", "platforms": []string{"email"}})
	require.Equal(t, http.StatusOK, w.Code)
	var res content.GenerateResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "sales", res.Metadata.Profession)
}
