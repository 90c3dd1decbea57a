package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeGeneratedImages_DropsEntriesWithoutURL(t *testing.T) {
	images := ImageList{
		{URL: "https://cdn.example.com/a.jpg"},
		{URL: ""},
		{URL: "https://cdn.example.com/b.jpg"},
	}

	normalized := NormalizeGeneratedImages(images, "")

	require.Len(t, normalized, 2)
	assert.Equal(t, "https://cdn.example.com/a.jpg", normalized[0].URL)
	assert.Equal(t, "https://cdn.example.com/b.jpg", normalized[1].URL)
}

func TestNormalizeGeneratedImages_FillsDefaults(t *testing.T) {
	images := ImageList{
		{URL: "https://cdn.example.com/a.jpg"},
		{URL: "https://cdn.example.com/b.png", ContentType: "image/png", Status: ImageStatusArchived},
	}

	normalized := NormalizeGeneratedImages(images, "")

	require.Len(t, normalized, 2)
	assert.Equal(t, "image/jpeg", normalized[0].ContentType)
	assert.Equal(t, ImageStatusReady, normalized[0].Status)
	// 已有值不被覆盖
	assert.Equal(t, "image/png", normalized[1].ContentType)
	assert.Equal(t, ImageStatusArchived, normalized[1].Status)
}

func TestNormalizeGeneratedImages_SelectionFlag(t *testing.T) {
	images := ImageList{
		{URL: "https://cdn.example.com/a.jpg", IsSelected: true},
		{URL: "https://cdn.example.com/b.jpg"},
	}

	normalized := NormalizeGeneratedImages(images, "https://cdn.example.com/b.jpg")

	require.Len(t, normalized, 2)
	assert.False(t, normalized[0].IsSelected)
	assert.True(t, normalized[1].IsSelected)
}

func TestNormalizeGeneratedImages_EmptySelectedURLClearsFlags(t *testing.T) {
	images := ImageList{
		{URL: "https://cdn.example.com/a.jpg", IsSelected: true},
	}

	normalized := NormalizeGeneratedImages(images, "")

	require.Len(t, normalized, 1)
	assert.False(t, normalized[0].IsSelected)
}

func TestNormalizeGeneratedImages_Idempotent(t *testing.T) {
	images := ImageList{
		{URL: "https://cdn.example.com/a.jpg"},
		{URL: ""},
		{URL: "https://cdn.example.com/b.jpg", ContentType: "image/webp"},
	}
	selected := "https://cdn.example.com/a.jpg"

	once := NormalizeGeneratedImages(images, selected)
	twice := NormalizeGeneratedImages(once, selected)

	assert.Equal(t, once, twice)
}

func TestDeriveBatchStatus(t *testing.T) {
	tests := []struct {
		name     string
		inFlight int64
		failed   int64
		total    int64
		want     string
	}{
		{"全部在执行", 5, 0, 5, BatchStatusRunning},
		{"剩一项在执行", 1, 2, 5, BatchStatusRunning},
		{"全部成功", 0, 0, 5, BatchStatusDone},
		{"部分失败仍算完成", 0, 2, 5, BatchStatusDone},
		{"全部失败", 0, 5, 5, BatchStatusFailed},
		{"单项失败", 0, 1, 1, BatchStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveBatchStatus(tt.inFlight, tt.failed, tt.total))
		})
	}
}

func TestGeneration_StatusPredicates(t *testing.T) {
	assert.True(t, (&Generation{Status: GenerationStatusPending}).IsInFlight())
	assert.True(t, (&Generation{Status: GenerationStatusProcessing}).IsInFlight())
	assert.True(t, (&Generation{Status: GenerationStatusDone}).IsTerminal())
	assert.True(t, (&Generation{Status: GenerationStatusFailed}).IsTerminal())
	assert.False(t, (&Generation{Status: GenerationStatusPending}).IsTerminal())
}
