package reports

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"promoter-service/internal/models"
)

// Kind names a report layout
type Kind string

const (
	KindComplaints Kind = "complaints"
	KindSales      Kind = "sales"
	KindFeedback   Kind = "feedback"
)

// ParseKind maps a path segment to a report kind
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindComplaints, KindSales, KindFeedback:
		return Kind(s), true
	}
	return "", false
}

// filePrefix is the leading part of the download name per kind
var filePrefix = map[Kind]string{
	KindComplaints: "complaints_log",
	KindSales:      "sales_report",
	KindFeedback:   "customer_feedback",
}

// emptyNoun is used in the "nothing to export" message
var emptyNoun = map[Kind]string{
	KindComplaints: "complaints",
	KindSales:      "sales",
	KindFeedback:   "feedback",
}

const dateTimeLayout = "2006-01-02 15:04:05"

// Cell is one report value. Text cells are free text and always quoted in CSV.
type Cell struct {
	Text   string
	Number int
	IsNum  bool
	Quoted bool
}

func text(s string) Cell  { return Cell{Text: s, Quoted: true} }
func plain(s string) Cell { return Cell{Text: s} }
func num(n int) Cell      { return Cell{Number: n, IsNum: true} }

// String returns the unquoted value
func (c Cell) String() string {
	if c.IsNum {
		return strconv.Itoa(c.Number)
	}
	return c.Text
}

// Report is a filtered record set laid out as rows
type Report struct {
	Kind   Kind
	Range  DayRange
	Header []string
	Rows   [][]Cell
}

// Empty reports whether no record fell in the range. Callers decide whether
// that is a failure.
func (r *Report) Empty() bool {
	return len(r.Rows) == 0
}

// EmptyMessage is the user-facing text for an empty report
func (r *Report) EmptyMessage() string {
	return fmt.Sprintf("No %s found for the selected date range.", emptyNoun[r.Kind])
}

// Filename returns the download name with the given extension, e.g. "csv"
func (r *Report) Filename(ext string) string {
	return fmt.Sprintf("%s_%s.%s", filePrefix[r.Kind], r.Range.Label(), ext)
}

// CSV renders the report with a header row and one row per record, newline separated.
// Quoted cells have embedded quotes doubled.
func (r *Report) CSV() []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(r.Header, ","))
	for _, row := range r.Rows {
		buf.WriteByte('\n')
		for i, cell := range row {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(formatCSVCell(cell))
		}
	}
	return buf.Bytes()
}

func formatCSVCell(c Cell) string {
	if c.Quoted {
		return `"` + strings.ReplaceAll(c.Text, `"`, `""`) + `"`
	}
	return c.String()
}

func formatTimestamp(ms int64, loc *time.Location) string {
	return time.UnixMilli(ms).In(loc).Format(dateTimeLayout)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Complaints builds the complaint log. Archived complaints are included.
func Complaints(records []models.ComplaintRecord, rng DayRange, loc *time.Location) *Report {
	r := &Report{
		Kind:   KindComplaints,
		Range:  rng,
		Header: []string{"Date", "Submitted By", "Priority", "Customer", "Mobile", "Issue", "Status", "Resolution Notes", "Archived"},
	}
	for _, c := range records {
		if !rng.Contains(c.Timestamp) {
			continue
		}
		r.Rows = append(r.Rows, []Cell{
			plain(formatTimestamp(c.Timestamp, loc)),
			text(c.SubmittedBy),
			plain(c.Priority),
			text(c.CustomerName),
			text(c.CustomerMobile),
			text(c.Description),
			plain(c.Status),
			text(c.ResolutionNotes),
			plain(yesNo(c.IsArchived)),
		})
	}
	return r
}

// Sales builds the sales report
func Sales(records []models.SaleRecord, rng DayRange, loc *time.Location) *Report {
	r := &Report{
		Kind:  KindSales,
		Range: rng,
		Header: []string{"Date", "Unique Code", "Promoter", "Sales Floor", "Customer", "Mobile", "Email",
			"Customer Origin", "Age", "Kiddo", "Extreme", "Individual", "Entry Only", "Status"},
	}
	for _, s := range records {
		if !rng.Contains(s.Timestamp) {
			continue
		}
		code := s.UniqueCode
		if code == "" {
			code = "-"
		}
		r.Rows = append(r.Rows, []Cell{
			plain(formatTimestamp(s.Timestamp, loc)),
			text(code),
			text(s.PromoterName),
			text(s.Location()),
			text(s.Customer.Name),
			text(s.Customer.Mobile),
			text(s.Customer.Email),
			text(s.Customer.Location),
			num(s.Customer.Age),
			num(s.Quantity(models.TicketKiddo)),
			num(s.Quantity(models.TicketExtreme)),
			num(s.Quantity(models.TicketIndividual)),
			num(s.Quantity(models.TicketEntryOnly)),
			plain(s.Status),
		})
	}
	return r
}

// Feedback builds the customer feedback report
func Feedback(records []models.FeedbackRecord, rng DayRange, loc *time.Location) *Report {
	r := &Report{
		Kind:   KindFeedback,
		Range:  rng,
		Header: []string{"Date", "Promoter", "Customer", "Age", "Mobile", "Email", "Rating (1-5)", "Comment"},
	}
	for _, f := range records {
		if !rng.Contains(f.Timestamp) {
			continue
		}
		r.Rows = append(r.Rows, []Cell{
			plain(formatTimestamp(f.Timestamp, loc)),
			text(f.PromoterName),
			text(f.Customer.Name),
			num(f.Customer.Age),
			text(f.Customer.Mobile),
			text(f.Customer.Email),
			num(f.Rating),
			text(f.Comment),
		})
	}
	return r
}
