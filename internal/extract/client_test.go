package extract

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Extract_Success(t *testing.T) {
	csvData := "type,supplier,brand,code,description,Power Type,price\nitem,SupplierA,Acme,PX-100,Mixer,220V,100\n"

	var got extractRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(extractResponse{
			CSV: base64.StdEncoding.EncodeToString([]byte(csvData)),
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	out, err := client.Extract(context.Background(), []File{
		{Name: "quote-a.pdf", Content: []byte("%PDF-1.7 fake a")},
		{Name: "quote-b.pdf", Content: []byte("%PDF-1.7 fake b")},
	})
	require.NoError(t, err)
	assert.Equal(t, csvData, string(out))

	// The files went up base64-encoded with their names.
	require.Len(t, got.Files, 2)
	assert.Equal(t, "quote-a.pdf", got.Files[0].Name)
	decoded, err := base64.StdEncoding.DecodeString(got.Files[0].Content)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 fake a", string(decoded))
}

func TestClient_Extract_NoFiles(t *testing.T) {
	client := NewClient("http://unused.invalid", time.Second)

	_, err := client.Extract(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files")
}

func TestClient_Extract_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Extract(context.Background(), []File{{Name: "q.pdf", Content: []byte("x")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_Extract_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Extract(context.Background(), []File{{Name: "q.pdf", Content: []byte("x")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_Extract_BadBase64Payload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(extractResponse{CSV: "not base64!!"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Extract(context.Background(), []File{{Name: "q.pdf", Content: []byte("x")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv payload")
}

func TestClient_Extract_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Extract(ctx, []File{{Name: "q.pdf", Content: []byte("x")}})
	require.Error(t, err)
}
