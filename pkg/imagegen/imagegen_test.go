package imagegen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Generate_Success(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images/generations", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"request_id": "req-001",
			"seed":       12345,
			"model":      "creative-diffusion-xl",
			"images": []map[string]interface{}{
				{"url": "https://cdn.example.com/a.jpg", "width": 1024, "height": 1024, "content_type": "image/jpeg"},
				{"url": "https://cdn.example.com/b.jpg", "width": 1024, "height": 1024, "content_type": "image/jpeg"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "creative-diffusion-xl", 10*time.Second)
	result, err := client.Generate(context.Background(), &GenerateRequest{
		Prompt:      "summer sale poster",
		Aspect:      "4:5",
		NumVariants: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, "req-001", result.RequestID)
	assert.Equal(t, int64(12345), result.Seed)
	require.Len(t, result.Images, 2)

	// 画幅预设解析为像素尺寸
	assert.Equal(t, float64(896), gotBody["width"])
	assert.Equal(t, float64(1120), gotBody["height"])
	assert.Equal(t, float64(2), gotBody["num_images"])
}

func TestClient_Generate_ImageToImage(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"request_id": "req-002",
			"images":     []map[string]interface{}{{"url": "https://cdn.example.com/a.jpg"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "creative-diffusion-xl", 10*time.Second)
	_, err := client.Generate(context.Background(), &GenerateRequest{
		Prompt:         "product remix",
		SourceImageURL: "https://cdn.example.com/source.jpg",
		Strength:       0.65,
	})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/source.jpg", gotBody["image_url"])
	assert.Equal(t, 0.65, gotBody["strength"])
}

func TestClient_Generate_MissingCredentials(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "creative-diffusion-xl", 10*time.Second)
	_, err := client.Generate(context.Background(), &GenerateRequest{Prompt: "x"})

	require.Error(t, err)
	ie, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeMissingCredentials, ie.Code)
	// 未配置密钥时不发起任何调用
	assert.False(t, called)
}

func TestClient_Generate_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "internal"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "creative-diffusion-xl", 10*time.Second)
	_, err := client.Generate(context.Background(), &GenerateRequest{Prompt: "x"})

	require.Error(t, err)
	ie, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeProvider, ie.Code)
}

func TestClient_Generate_ErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"error": "content policy violation"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "creative-diffusion-xl", 10*time.Second)
	_, err := client.Generate(context.Background(), &GenerateRequest{Prompt: "x"})

	require.Error(t, err)
	ie, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeProvider, ie.Code)
	assert.Contains(t, ie.Message, "content policy violation")
}

func TestClient_Generate_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "creative-diffusion-xl", 50*time.Millisecond)
	_, err := client.Generate(context.Background(), &GenerateRequest{Prompt: "x"})

	require.Error(t, err)
	ie, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeTimeout, ie.Code)
}

func TestClient_Generate_EmptyImages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"request_id": "req-003",
			"images":     []map[string]interface{}{{"url": ""}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "creative-diffusion-xl", 10*time.Second)
	_, err := client.Generate(context.Background(), &GenerateRequest{Prompt: "x"})

	require.Error(t, err)
	ie, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeProvider, ie.Code)
}

func TestResolveAspect(t *testing.T) {
	w, h := ResolveAspect("9:16")
	assert.Equal(t, 768, w)
	assert.Equal(t, 1344, h)

	// 无效预设回退默认画幅
	w, h = ResolveAspect("7:3")
	assert.Equal(t, 1024, w)
	assert.Equal(t, 1024, h)
}

func TestIsValidAspect(t *testing.T) {
	assert.True(t, IsValidAspect("1:1"))
	assert.True(t, IsValidAspect("16:9"))
	assert.False(t, IsValidAspect(""))
	assert.False(t, IsValidAspect("2:1"))
}
