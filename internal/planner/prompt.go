package planner

import (
	"fmt"
	"strings"
)

// Prompt classification markers. Every prompt built here carries exactly one
// of them, and the notification pipeline uses them to pick the right anchor
// pair for a history entry's response.
const (
	initialPromptMarker = "cách để trồng cây"
	updatePromptMarker  = "Cập nhật tiến độ"
)

// ClassifyPrompt inspects a recorded prompt and reports which template built
// it. The second result is false for prompts carrying neither marker.
func ClassifyPrompt(prompt string) (PromptKind, bool) {
	if strings.Contains(prompt, initialPromptMarker) {
		return KindInitial, true
	}
	if strings.Contains(prompt, updatePromptMarker) {
		return KindUpdate, true
	}
	return KindInitial, false
}

// InitialPromptParams carries everything the initial plan template embeds.
type InitialPromptParams struct {
	ProjectID   string
	ProjectName string
	FruitType   string
	City        string
	Date        string // DD/MM/YYYY
	Temperature float64
	Description string
	Humidity    int
	WindSpeed   float64
}

// BuildInitialPrompt renders the first cultivation-plan prompt. The frame
// forces the model to answer inside fixed numbered sections so that the
// schedule table lands between the anchors ExtractSection looks for.
func BuildInitialPrompt(p InitialPromptParams) string {
	return fmt.Sprintf(`Tôi là một người không biết gì về trồng cây ăn quả. Vậy nên hãy cho tôi cách để trồng cây %[1]s dựa vào điều kiện và trả lời đúng khung sau mà không thay đổi:
-Điều kiện:
+)Vị trí và thời tiết
Ngày hiện tại: %[2]s
Thành phố: %[3]s
Nhiệt độ: %.1[4]f°C
Mô tả: %[5]s
Độ ẩm: %[6]d%%
Tốc độ gió: %.1[7]f m/s

-Khung:
## Dự án %[8]s (ID: %[9]s): Trồng cây %[1]s tại %[3]s

•1. Thông tin về giống, loại đất, phân bón, cây con:

•Giống %[1]s : [Trả lời]

•Loại đất phù hợp với %[1]s: [Trả lời]

•Phân bón phù hợp với %[1]s: [Trả lời]

•Cây con phù hợp với %[1]s: [Trả lời]

•2. Kỹ thuật và quy trình:

•Bước 1: [Trả lời]

•Bước 2: [Trả lời]
[Thêm các bước nữa nếu có]

•3. Giám sát và chăm sóc (Bắt đầu từ %[2]s):

•(Thời gian biểu này là gợi ý, bạn cần điều chỉnh dựa trên tình hình thực tế của cây)

| Ngày | Giờ | Hoạt động | Số liệu/Ghi chú |
| [Trả lời] | [Trả lời] | [Trả lời] | [Trả lời] |
•Lưu ý: [Trả lời]

•4. Cập nhật từ bạn:

[Tự trả lời]`,
		p.FruitType, p.Date, p.City, p.Temperature, p.Description, p.Humidity, p.WindSpeed, p.ProjectName, p.ProjectID)
}

// UpdatePromptParams carries the inputs of a progress-update round.
type UpdatePromptParams struct {
	Date       string // DD/MM/YYYY
	LastResult string // result text of the most recent history entry
	Completed  []string
	Pending    []string
}

// BuildUpdatePrompt renders the progress-update prompt: what was and was not
// done so far plus the previous plan, asking for a revised schedule in the
// same table frame.
func BuildUpdatePrompt(p UpdatePromptParams) string {
	completed := "không có gì"
	if len(p.Completed) > 0 {
		completed = strings.Join(p.Completed, ", ")
	}
	pending := "không có gì"
	if len(p.Pending) > 0 {
		pending = strings.Join(p.Pending, ", ")
	}

	return fmt.Sprintf(`Cập nhật tiến độ: Hôm nay ngày %s tôi đã làm %s và chưa làm %s. In ra kết quả theo khung kế hoạch dưới cho hôm nay và hôm sau dựa theo điều trước và những điều sau:
- Điều một:
%s

-Khung:
(Thời gian biểu này là gợi ý, bạn cần điều chỉnh dựa trên tình hình thực tế của cây)
+ Những điều cần làm trong hôm nay:
[Trả lời]
+ Kế hoạch cho những ngày sau:
| Ngày | Giờ | Hoạt động | Số liệu/Ghi chú |
| [Trả lời] | [Trả lời] | [Trả lời] | [Trả lời] |
•Lưu ý: [Trả lời]`,
		p.Date, completed, pending, p.LastResult)
}
