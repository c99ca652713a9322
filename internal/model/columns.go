package model

// ColumnRole describes one logical column located by keyword.
type ColumnRole struct {
	Name     string   // e.g. "end_date"
	Keywords []string // substrings matched against header names
	Required bool     // a missing required column halts rendering
}

// Default keyword sets for the schedule sheet.
var (
	NameRole    = ColumnRole{Name: "name", Keywords: []string{"사업명"}, Required: true}
	EndDateRole = ColumnRole{Name: "end_date", Keywords: []string{"제출일", "종료일"}, Required: true}
	ManagerRole = ColumnRole{Name: "manager", Keywords: []string{"담당자"}}
)

// DefaultDisplayColumns lists passthrough columns shown in the detail table
// when present, in display order.
var DefaultDisplayColumns = []string{"수요기관(발주처)", "캠프명", "사업 금액(VAT포함)"}

// AmountKeyword marks a display column whose numeric cells get thousands
// separators.
const AmountKeyword = "금액"

// UnknownManager is the category used when the manager cell is empty.
const UnknownManager = "Unknown"
