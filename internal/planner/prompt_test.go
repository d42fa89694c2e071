package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInitialPrompt(t *testing.T) {
	prompt := BuildInitialPrompt(InitialPromptParams{
		ProjectID:   "agri-10001-2024",
		ProjectName: "Vườn nhà",
		FruitType:   "Xoài",
		City:        "Hà Nội",
		Date:        "10/05/2025",
		Temperature: 31.5,
		Description: "trời nắng",
		Humidity:    70,
		WindSpeed:   2.4,
	})

	assert.Contains(t, prompt, "cách để trồng cây Xoài")
	assert.Contains(t, prompt, "Ngày hiện tại: 10/05/2025")
	assert.Contains(t, prompt, "Thành phố: Hà Nội")
	assert.Contains(t, prompt, "Nhiệt độ: 31.5°C")
	assert.Contains(t, prompt, "Độ ẩm: 70%")
	assert.Contains(t, prompt, "Tốc độ gió: 2.4 m/s")
	assert.Contains(t, prompt, "## Dự án Vườn nhà (ID: agri-10001-2024)")

	// The frame must carry both anchor pairs so responses are extractable.
	assert.Contains(t, prompt, "•3. Giám sát và chăm sóc")
	assert.Contains(t, prompt, "•4. Cập nhật từ bạn")
	assert.Contains(t, prompt, "| Ngày | Giờ | Hoạt động | Số liệu/Ghi chú |")

	kind, ok := ClassifyPrompt(prompt)
	require.True(t, ok)
	assert.Equal(t, KindInitial, kind)
}

func TestBuildUpdatePrompt(t *testing.T) {
	prompt := BuildUpdatePrompt(UpdatePromptParams{
		Date:       "11/05/2025",
		LastResult: "kế hoạch cũ",
		Completed:  []string{"10/05/2025 - Tưới nước"},
		Pending:    []string{"10/05/2025 - Bón phân", "10/05/2025 - Tỉa cành"},
	})

	assert.Contains(t, prompt, "Hôm nay ngày 11/05/2025")
	assert.Contains(t, prompt, "tôi đã làm 10/05/2025 - Tưới nước")
	assert.Contains(t, prompt, "chưa làm 10/05/2025 - Bón phân, 10/05/2025 - Tỉa cành")
	assert.Contains(t, prompt, "kế hoạch cũ")
	assert.Contains(t, prompt, "+ Kế hoạch cho những ngày sau:")
	assert.Contains(t, prompt, "•Lưu ý:")

	kind, ok := ClassifyPrompt(prompt)
	require.True(t, ok)
	assert.Equal(t, KindUpdate, kind)
}

func TestBuildUpdatePrompt_NothingDoneYet(t *testing.T) {
	prompt := BuildUpdatePrompt(UpdatePromptParams{Date: "11/05/2025"})

	assert.Contains(t, prompt, "tôi đã làm không có gì")
	assert.Contains(t, prompt, "chưa làm không có gì")
}

func TestClassifyPrompt_Unknown(t *testing.T) {
	_, ok := ClassifyPrompt("một câu hỏi tự do không theo mẫu")
	assert.False(t, ok)
}
