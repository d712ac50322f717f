package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"repurpose/internal/stt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bytesReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}

func audioRequest(t *testing.T, token, field, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="clip"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/transcribe", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func (e *testEnv) serve(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestTranscribe_DeclaredType(t *testing.T) {
	e := newTestEnv(t)
	token, _ := e.signup(t, "stt@example.com")

	w, env := e.serve(audioRequest(t, token, "audio", "audio/webm;codecs=opus", make([]byte, 3<<20+1)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res stt.Transcription
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "fake words here", res.Transcript)
	assert.Equal(t, 3, res.WordCount)
	assert.Equal(t, "audio/webm;codecs=opus", e.transcriber.mimeType)
	assert.Equal(t, 4, e.usage.Minutes())
}

func TestTranscribe_SniffsOctetStream(t *testing.T) {
	e := newTestEnv(t)
	token, _ := e.signup(t, "sniff@example.com")

	mp3 := append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), make([]byte, 64)...)
	w, _ := e.serve(audioRequest(t, token, "audio", "application/octet-stream", mp3))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "audio/mpeg", e.transcriber.mimeType)
}

func TestTranscribe_Rejects(t *testing.T) {
	e := newTestEnv(t)
	token, _ := e.signup(t, "rej@example.com")

	w, env := e.serve(audioRequest(t, token, "audio", "video/mp4", []byte("data")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "unsupported audio format")

	w, _ = e.serve(audioRequest(t, token, "audio", "application/octet-stream", []byte("just some text")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = e.serve(audioRequest(t, token, "file", "audio/mpeg", []byte("data")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "no audio file provided", env.Error)

	w, _ = e.serve(audioRequest(t, "", "audio", "audio/mpeg", []byte("data")))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, 0, e.transcriber.calls)
	assert.Equal(t, 0, e.usage.Minutes())
}

func TestTranscribe_SizeLimit(t *testing.T) {
	e := newTestEnv(t)
	token, _ := e.signup(t, "size@example.com")

	tests := []struct {
		name string
		size int
		want int
	}{
		{"just over the limit", stt.MaxAudioSize + 10, http.StatusRequestEntityTooLarge},
		{"beyond the body limit", stt.MaxAudioSize + 2<<20, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := e.serve(audioRequest(t, token, "audio", "audio/mpeg", make([]byte, tt.size)))
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, "file size exceeds 50MB limit", env.Error)
		})
	}
	assert.Equal(t, 0, e.transcriber.calls)
	assert.Equal(t, 0, e.usage.Minutes())

	w, _ := e.serve(audioRequest(t, token, "audio", "audio/mpeg", make([]byte, stt.MaxAudioSize)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, e.transcriber.calls)
	assert.Equal(t, 50, e.usage.Minutes())
}
