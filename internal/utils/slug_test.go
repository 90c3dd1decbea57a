package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"普通名称", "Acme Studio", "acme-studio"},
		{"特殊字符折叠", "Acme & Co. (HK)", "acme-co-hk"},
		{"前后空白", "  Spaced Out  ", "spaced-out"},
		{"连续分隔符", "a---b___c", "a-b-c"},
		{"纯中文回退", "星辰工作室", "item"},
		{"空字符串回退", "", "item"},
		{"已是slug", "already-a-slug", "already-a-slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestUniqueSlug_NoConflict(t *testing.T) {
	slug, err := UniqueSlug("Acme Studio", func(slug string) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "acme-studio", slug)
}

func TestUniqueSlug_AppendsCounter(t *testing.T) {
	taken := map[string]bool{
		"acme-studio":   true,
		"acme-studio-1": true,
	}
	slug, err := UniqueSlug("Acme Studio", func(slug string) (bool, error) {
		return taken[slug], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "acme-studio-2", slug)
}
