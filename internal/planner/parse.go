package planner

import (
	"regexp"
	"strings"
)

// A schedule row is a pipe-framed table line with four cells:
// | Ngày | Giờ | Hoạt động | Số liệu/Ghi chú |
// The pattern is applied per line; `.` does not cross newlines.
var rowPattern = regexp.MustCompile(`\|.*\|.*\|.*\|.*\|`)

// ParseRows scans a schedule section for table rows and converts them to
// task records in input order. The fourth (notes) cell is ignored.
//
// Rows whose date, time or activity cell is empty after trimming are dropped
// silently. The header row and rows that still carry placeholder text (a
// literal "[Trả lời]" the model did not replace) have non-empty cells and pass
// through as-is; evaluation later skips them on date parsing.
func ParseRows(section string) []TaskRecord {
	lines := rowPattern.FindAllString(section, -1)

	tasks := make([]TaskRecord, 0, len(lines))
	for _, line := range lines {
		cells := strings.Split(line, "|")
		if len(cells) < 4 {
			continue
		}

		t := TaskRecord{
			Date:     strings.TrimSpace(cells[1]),
			Time:     strings.TrimSpace(cells[2]),
			Activity: strings.TrimSpace(cells[3]),
		}
		if t.Date == "" || t.Time == "" || t.Activity == "" {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks
}
