package reports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"promoter-service/internal/models"
)

func mustRange(t *testing.T, start, end string) DayRange {
	t.Helper()
	rng, err := ParseDayRange(start, end, time.UTC)
	require.NoError(t, err)
	return rng
}

func ms(t time.Time) int64 { return t.UnixMilli() }

// ===========================================
// DayRange
// ===========================================

func TestParseDayRange_InclusiveBounds(t *testing.T) {
	rng := mustRange(t, "2024-05-01", "2024-05-02")

	assert.True(t, rng.Contains(ms(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))))
	assert.True(t, rng.Contains(ms(time.Date(2024, 5, 2, 23, 59, 59, 999_000_000, time.UTC))))
	assert.False(t, rng.Contains(ms(time.Date(2024, 4, 30, 23, 59, 59, 999_000_000, time.UTC))))
	assert.False(t, rng.Contains(ms(time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC))))
	assert.Equal(t, "2024-05-01_to_2024-05-02", rng.Label())
}

func TestParseDayRange_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5:30", 5*3600+1800)
	rng, err := ParseDayRange("2024-05-01", "2024-05-01", loc)
	require.NoError(t, err)

	// 2024-04-30 19:00 UTC is 00:30 on May 1st at +05:30
	assert.True(t, rng.Contains(ms(time.Date(2024, 4, 30, 19, 0, 0, 0, time.UTC))))
}

func TestParseDayRange_Invalid(t *testing.T) {
	_, err := ParseDayRange("2024/05/01", "2024-05-02", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = ParseDayRange("2024-05-03", "2024-05-02", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

// ===========================================
// CSV layouts
// ===========================================

func TestComplaintsCSV_QuotesFreeText(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 15, 0, time.UTC)
	records := []models.ComplaintRecord{{
		ID:              "c1",
		Timestamp:       ms(at),
		CustomerName:    "Doe, Jane",
		CustomerMobile:  "0771234567",
		Description:     `He said "hi"`,
		Priority:        models.PriorityHigh,
		Status:          models.ComplaintStatusResolved,
		SubmittedBy:     models.SubmittedByCustomerService,
		ResolutionNotes: "",
		IsArchived:      true,
	}}

	report := Complaints(records, mustRange(t, "2024-05-01", "2024-05-01"), time.UTC)
	lines := strings.Split(string(report.CSV()), "\n")

	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Submitted By,Priority,Customer,Mobile,Issue,Status,Resolution Notes,Archived", lines[0])
	assert.Equal(t, `2024-05-01 09:30:15,"Customer Service",High,"Doe, Jane","0771234567","He said ""hi""",Resolved,"",Yes`, lines[1])
	assert.Contains(t, lines[1], `"He said ""hi"""`)
}

func TestSalesCSV_Row(t *testing.T) {
	at := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	records := []models.SaleRecord{{
		ID:           "s1",
		PromoterName: "Alice Johnson",
		Customer:     models.CustomerData{Name: "Jane", Mobile: "0711234567", Email: "a@b.com", Location: "Kandy", Age: 31},
		Items:        map[models.TicketType]int{models.TicketKiddo: 2, models.TicketEntryOnly: 1},
		Status:       models.SaleStatusVerified,
		Timestamp:    ms(at),
	}}

	report := Sales(records, mustRange(t, "2024-05-01", "2024-05-01"), time.UTC)
	lines := strings.Split(string(report.CSV()), "\n")

	require.Len(t, lines, 2)
	assert.Equal(t, `2024-05-01 18:00:00,"-","Alice Johnson","General","Jane","0711234567","a@b.com","Kandy",31,2,0,0,1,Verified`, lines[1])
	assert.Equal(t, "sales_report_2024-05-01_to_2024-05-01.csv", report.Filename("csv"))
}

func TestFeedbackCSV_FiltersByRange(t *testing.T) {
	inside := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	outside := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)
	records := []models.FeedbackRecord{
		{PromoterName: "Bob", Customer: models.CustomerData{Name: "Kim", Age: 20}, Rating: 5, Comment: "Loved it", Timestamp: ms(inside)},
		{PromoterName: "Bob", Customer: models.CustomerData{Name: "Lee"}, Rating: 1, Timestamp: ms(outside)},
	}

	report := Feedback(records, mustRange(t, "2024-05-01", "2024-05-03"), time.UTC)

	require.Len(t, report.Rows, 1)
	assert.Equal(t, "Kim", report.Rows[0][2].String())
	assert.Equal(t, "5", report.Rows[0][6].String())
	assert.Equal(t, "customer_feedback_2024-05-01_to_2024-05-03.xlsx", report.Filename("xlsx"))
}

func TestReport_EmptyIsNotAnError(t *testing.T) {
	report := Complaints(nil, mustRange(t, "2024-01-01", "2024-01-31"), time.UTC)

	assert.True(t, report.Empty())
	assert.Equal(t, "No complaints found for the selected date range.", report.EmptyMessage())
	assert.Equal(t, "Date,Submitted By,Priority,Customer,Mobile,Issue,Status,Resolution Notes,Archived", string(report.CSV()))
}

func TestComplaints_IncludesArchived(t *testing.T) {
	at := ms(time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC))
	records := []models.ComplaintRecord{
		{ID: "a", Timestamp: at, Status: models.ComplaintStatusResolved, IsArchived: true},
		{ID: "b", Timestamp: at, Status: models.ComplaintStatusOpen},
	}

	report := Complaints(records, mustRange(t, "2024-02-01", "2024-02-29"), time.UTC)

	require.Len(t, report.Rows, 2)
	assert.Equal(t, "Yes", report.Rows[0][8].String())
	assert.Equal(t, "No", report.Rows[1][8].String())
}

func TestParseKind(t *testing.T) {
	kind, ok := ParseKind("sales")
	assert.True(t, ok)
	assert.Equal(t, KindSales, kind)

	_, ok = ParseKind("promoters")
	assert.False(t, ok)
}

// ===========================================
// XLSX
// ===========================================

func TestXLSX_WritesHeaderAndRows(t *testing.T) {
	at := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	records := []models.SaleRecord{{
		PromoterName: "Alice",
		Customer:     models.CustomerData{Name: "Jane", Age: 40},
		Items:        map[models.TicketType]int{models.TicketExtreme: 3},
		Status:       models.SaleStatusPending,
		Timestamp:    ms(at),
	}}
	report := Sales(records, mustRange(t, "2024-05-01", "2024-05-01"), time.UTC)

	data, err := report.XLSX()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Sales", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Unique Code", header)

	extreme, err := f.GetCellValue("Sales", "K2")
	require.NoError(t, err)
	assert.Equal(t, "3", extreme)

	customer, err := f.GetCellValue("Sales", "E2")
	require.NoError(t, err)
	assert.Equal(t, "Jane", customer)
}

func TestXLSX_StylesAndSizesHeaderRow(t *testing.T) {
	report := Feedback(nil, mustRange(t, "2024-05-01", "2024-05-01"), time.UTC)

	data, err := report.XLSX()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	for i := range report.Header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		style, err := f.GetCellStyle("Feedback", cell)
		require.NoError(t, err)
		assert.NotZero(t, style, "header %s should carry the header style", cell)

		col, err := excelize.ColumnNumberToName(i + 1)
		require.NoError(t, err)
		width, err := f.GetColWidth("Feedback", col)
		require.NoError(t, err)
		assert.Equal(t, float64(20), width)
	}
}
