package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"grievancehub/internal/model"
	"grievancehub/internal/repository"
)

// ReportStore is the aggregate-query surface for analytics and exports.
// *repository.ReportRepository satisfies it.
type ReportStore interface {
	CountByCategory(ctx context.Context) ([]model.NameCount, error)
	CountByStatus(ctx context.Context) ([]model.NameCount, error)
	MonthlyCounts(ctx context.Context, since time.Time) ([]repository.MonthlyRow, error)
	ResolutionStats(ctx context.Context) (*repository.ResolutionStats, error)
	ListForExport(ctx context.Context) ([]model.Complaint, error)
}

type ReportService struct {
	reports ReportStore
}

func NewReportService(reports ReportStore) *ReportService {
	return &ReportService{reports: reports}
}

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func (s *ReportService) Analytics(ctx context.Context, principal model.Principal) (*model.AnalyticsPayload, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	byCategory, err := s.reports.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.reports.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, -6, 0)
	monthly, err := s.reports.MonthlyCounts(ctx, since)
	if err != nil {
		return nil, err
	}
	trends := make([]model.MonthlyCount, 0, len(monthly))
	for _, row := range monthly {
		trends = append(trends, model.MonthlyCount{
			Month:      fmt.Sprintf("%s '%02d", monthNames[row.Month.Month()-1], row.Month.Year()%100),
			Complaints: row.Count,
		})
	}

	stats, err := s.reports.ResolutionStats(ctx)
	if err != nil {
		return nil, err
	}

	rate := int64(0)
	if stats.Total > 0 {
		rate = stats.Resolved * 100 / stats.Total
	}
	avg := 0.0
	if stats.AvgDays != nil {
		avg = *stats.AvgDays
	}

	return &model.AnalyticsPayload{
		ComplaintsByCategory: byCategory,
		ComplaintsByStatus:   byStatus,
		MonthlyTrends:        trends,
		SummaryStats: model.SummaryStats{
			TotalComplaints:   stats.Total,
			AvgResolutionTime: fmt.Sprintf("%.1f days", avg),
			ResolutionRate:    fmt.Sprintf("%d%%", rate),
		},
	}, nil
}

func (s *ReportService) ExportCSV(ctx context.Context, principal model.Principal) ([]byte, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	complaints, err := s.reports.ListForExport(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"ID", "Title", "Description", "Category", "Status", "Created By", "Created At", "Updated At"}); err != nil {
		return nil, err
	}
	for _, c := range complaints {
		if err := w.Write([]string{
			c.ID.String(),
			c.Title,
			c.Description,
			c.Category,
			string(c.Status),
			submitterName(c),
			c.CreatedAt.UTC().Format("2006-01-02"),
			c.UpdatedAt.UTC().Format("2006-01-02"),
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ReportService) ExportPDF(ctx context.Context, principal model.Principal) ([]byte, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	complaints, err := s.reports.ListForExport(ctx)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Complaints Report")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Generated on: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(12)

	headers := []string{"ID", "Title", "Category", "Status", "Created By"}
	widths := []float64{38, 62, 30, 26, 34}

	pdf.SetFont("Helvetica", "B", 9)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, c := range complaints {
		row := []string{
			truncate(c.ID.String(), 20),
			truncate(c.Title, 38),
			truncate(c.Category, 18),
			string(c.Status),
			truncate(submitterName(c), 20),
		}
		for i, cell := range row {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func submitterName(c model.Complaint) string {
	if c.Submitter != nil {
		return c.Submitter.Name
	}
	return "Anonymous"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
