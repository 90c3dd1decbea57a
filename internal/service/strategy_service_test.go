package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlannedItems_PlainArray(t *testing.T) {
	raw := `[
		{"persona": "都市白领", "angle": "功能卖点", "prompt": "a sleek laptop on a minimalist desk", "headline": "效率翻倍", "cta": "立即购买"},
		{"persona": "学生党", "angle": "价格优势", "prompt": "a student using laptop in library", "headline": "学生专享价", "cta": "了解详情"}
	]`

	items, err := ParsePlannedItems(raw)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "都市白领", items[0].Persona)
	assert.Equal(t, "价格优势", items[1].Angle)
}

func TestParsePlannedItems_FencedCodeBlock(t *testing.T) {
	raw := "```json\n[{\"persona\": \"A\", \"angle\": \"B\", \"prompt\": \"test prompt\"}]\n```"

	items, err := ParsePlannedItems(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "test prompt", items[0].Prompt)
}

func TestParsePlannedItems_SurroundingText(t *testing.T) {
	raw := `以下是创意计划:
[{"persona": "A", "angle": "B", "prompt": "test prompt"}]
希望对你有帮助。`

	items, err := ParsePlannedItems(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestParsePlannedItems_DropsEmptyPrompt(t *testing.T) {
	raw := `[
		{"persona": "A", "prompt": "valid prompt"},
		{"persona": "B", "prompt": "  "},
		{"persona": "C", "prompt": ""}
	]`

	items, err := ParsePlannedItems(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].Persona)
}

func TestParsePlannedItems_NoArray(t *testing.T) {
	_, err := ParsePlannedItems("抱歉,我无法完成该请求。")
	assert.Error(t, err)
}

func TestParsePlannedItems_AllEmptyPrompts(t *testing.T) {
	_, err := ParsePlannedItems(`[{"persona": "A", "prompt": ""}]`)
	assert.Error(t, err)
}

func TestParsePlannedItems_MalformedJSON(t *testing.T) {
	_, err := ParsePlannedItems(`[{"persona": "A", "prompt": "x"`)
	assert.Error(t, err)
}
