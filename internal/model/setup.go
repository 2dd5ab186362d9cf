package model

import (
	"strconv"
	"strings"
	"time"
)

// 主辦方票務設定的驗證器。
// 輸入是表單原樣的字串草稿，輸出是正規化後的設定或違規清單；
// 非數字輸入一律當作未通過對應的數字檢查，不會 panic。

// ZoneDraft 主辦方填寫的單一分區；數字欄位保留字串原值
type ZoneDraft struct {
	Name         string
	Price        string // 空字串表示未設定價格（不是 0 元）
	Rows         string
	Cols         string
	TicketTypeID *int
}

// SalesWindowDraft 日期與時間分開填寫，各自都必填
type SalesWindowDraft struct {
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string
}

// SetupDraft 主辦方送出的完整票務設定草稿
type SetupDraft struct {
	Zones       []ZoneDraft
	MinPerOrder string
	MaxPerOrder string
	Window      SalesWindowDraft
	Active      bool
}

type ViolationKind string

const (
	ViolationGridDimension    ViolationKind = "grid_dimension"
	ViolationZoneNameEmpty    ViolationKind = "zone_name_empty"
	ViolationMinBelowOne      ViolationKind = "min_below_one"
	ViolationMaxBelowOne      ViolationKind = "max_below_one"
	ViolationMinExceedsMax    ViolationKind = "min_exceeds_max"
	ViolationWindowIncomplete ViolationKind = "window_incomplete"
	ViolationWindowOrdering   ViolationKind = "window_ordering"
)

// Violation 一條可直接顯示給使用者的違規訊息
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Message string        `json:"message"`
}

// NormalizedZone 驗證通過後的分區；Code 與 Name 永遠相等（皆為去空白後的名稱）
type NormalizedZone struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Code         string   `json:"code"`
	Price        *float64 `json:"price,omitempty"`
	Rows         int      `json:"rows"`
	Cols         int      `json:"cols"`
	TicketTypeID *int     `json:"ticket_type_id,omitempty"`
}

// NormalizedZoneConfig 驗證通過後的完整設定，即持久化的 wire 形狀
type NormalizedZoneConfig struct {
	GlobalRows  int              `json:"global_rows"`
	GlobalCols  int              `json:"global_cols"`
	Zones       []NormalizedZone `json:"zones"`
	MinPerOrder int              `json:"min_per_order"`
	MaxPerOrder int              `json:"max_per_order"`
	SalesStart  time.Time        `json:"sales_start"`
	SalesEnd    time.Time        `json:"sales_end"`
	Active      bool             `json:"active"`
}

const (
	windowDraftLayout   = "2006-01-02 15:04"
	windowDisplayLayout = "02/01/2006 15:04"
)

// FormatWindowTime 固定 24 小時制、日-月-年 的顯示格式
func FormatWindowTime(t time.Time) string {
	return t.Format(windowDisplayLayout)
}

func parsePositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func parseWindowPart(date, timeOfDay string) (time.Time, bool) {
	t, err := time.ParseInLocation(windowDraftLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(timeOfDay), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ValidateSetup 驗證草稿並正規化。
// 回傳所有違規而不是只有第一條；呼叫端（多數 UI 一次只跳一個警告）自行取第一條顯示。
// 第一個分區的 rows/cols 是全域網格尺寸的唯一依據，其他分區沒填才會繼承。
func ValidateSetup(draft SetupDraft) (*NormalizedZoneConfig, []Violation) {
	var violations []Violation

	// 1. 網格：第一個分區的列/欄數必須是正整數
	globalRows, globalCols := 0, 0
	if len(draft.Zones) == 0 {
		violations = append(violations, Violation{
			Kind:    ViolationGridDimension,
			Message: "Seat grid rows and columns must be positive integers",
		})
	} else {
		var rowsOK, colsOK bool
		globalRows, rowsOK = parsePositiveInt(draft.Zones[0].Rows)
		globalCols, colsOK = parsePositiveInt(draft.Zones[0].Cols)
		if !rowsOK || !colsOK {
			violations = append(violations, Violation{
				Kind:    ViolationGridDimension,
				Message: "Seat grid rows and columns must be positive integers",
			})
		}
	}

	// 2. 分區名稱：去空白後不得為空
	for _, z := range draft.Zones {
		if strings.TrimSpace(z.Name) == "" {
			violations = append(violations, Violation{
				Kind:    ViolationZoneNameEmpty,
				Message: "Zone name must not be empty",
			})
		}
	}

	// 3. 單筆訂單張數上下限
	minPerOrder, minOK := parsePositiveInt(draft.MinPerOrder)
	if !minOK {
		violations = append(violations, Violation{
			Kind:    ViolationMinBelowOne,
			Message: "Minimum tickets per order must be at least 1",
		})
	}
	maxPerOrder, maxOK := parsePositiveInt(draft.MaxPerOrder)
	if !maxOK {
		violations = append(violations, Violation{
			Kind:    ViolationMaxBelowOne,
			Message: "Maximum tickets per order must be at least 1",
		})
	}
	if minOK && maxOK && minPerOrder > maxPerOrder {
		violations = append(violations, Violation{
			Kind:    ViolationMinExceedsMax,
			Message: "Minimum tickets per order must not exceed the maximum",
		})
	}

	// 4. 販售時間：日期與時間各自必填；都齊全才檢查起迄順序
	var start, end time.Time
	windowComplete := true
	for _, part := range []string{draft.Window.StartDate, draft.Window.StartTime, draft.Window.EndDate, draft.Window.EndTime} {
		if strings.TrimSpace(part) == "" {
			windowComplete = false
		}
	}
	if windowComplete {
		var startOK, endOK bool
		start, startOK = parseWindowPart(draft.Window.StartDate, draft.Window.StartTime)
		end, endOK = parseWindowPart(draft.Window.EndDate, draft.Window.EndTime)
		if !startOK || !endOK {
			windowComplete = false
		}
	}
	if !windowComplete {
		violations = append(violations, Violation{
			Kind:    ViolationWindowIncomplete,
			Message: "Sales window start and end date/time are required",
		})
	} else if !start.Before(end) {
		violations = append(violations, Violation{
			Kind:    ViolationWindowOrdering,
			Message: "Sales window start must be before its end",
		})
	}

	if len(violations) > 0 {
		return nil, violations
	}

	// 5. 正規化：名稱去空白後同時作為顯示名稱與 wire code；
	// 空白價格維持「未設定」而不是 0，保留免費與未定價的差異
	zones := make([]NormalizedZone, 0, len(draft.Zones))
	for i, z := range draft.Zones {
		name := strings.TrimSpace(z.Name)
		rows, cols := globalRows, globalCols
		if i > 0 {
			if r, ok := parsePositiveInt(z.Rows); ok {
				if c, ok := parsePositiveInt(z.Cols); ok {
					rows, cols = r, c
				}
			}
		}
		zones = append(zones, NormalizedZone{
			ID:           "zone-" + strconv.Itoa(i+1),
			Name:         name,
			Code:         name,
			Price:        parseOptionalPrice(z.Price),
			Rows:         rows,
			Cols:         cols,
			TicketTypeID: z.TicketTypeID,
		})
	}

	return &NormalizedZoneConfig{
		GlobalRows:  globalRows,
		GlobalCols:  globalCols,
		Zones:       zones,
		MinPerOrder: minPerOrder,
		MaxPerOrder: maxPerOrder,
		SalesStart:  start,
		SalesEnd:    end,
		Active:      draft.Active,
	}, nil
}

func parseOptionalPrice(s string) *float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	p, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &p
}
