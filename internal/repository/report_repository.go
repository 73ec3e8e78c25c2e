package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"grievancehub/internal/model"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) CountByCategory(ctx context.Context) ([]model.NameCount, error) {
	var rows []model.NameCount
	err := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Select("category AS name, COUNT(*) AS value").
		Group("category").
		Order("category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) CountByStatus(ctx context.Context) ([]model.NameCount, error) {
	var rows []model.NameCount
	err := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Select("status AS name, COUNT(*) AS value").
		Group("status").
		Order("status ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type MonthlyRow struct {
	Month time.Time
	Count int64
}

func (r *ReportRepository) MonthlyCounts(ctx context.Context, since time.Time) ([]MonthlyRow, error) {
	var rows []MonthlyRow
	err := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Select("DATE_TRUNC('month', created_at) AS month, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type ResolutionStats struct {
	Total    int64
	Resolved int64
	// AvgDays is nil when no complaint has been resolved yet.
	AvgDays *float64
}

func (r *ReportRepository) ResolutionStats(ctx context.Context) (*ResolutionStats, error) {
	stats := &ResolutionStats{}

	if err := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Where("status = ?", model.ComplaintStatusResolved).
		Count(&stats.Resolved).Error; err != nil {
		return nil, err
	}

	err := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Select("AVG(EXTRACT(EPOCH FROM (updated_at - created_at)) / 86400.0)").
		Where("status = ?", model.ComplaintStatusResolved).
		Scan(&stats.AvgDays).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *ReportRepository) ListForExport(ctx context.Context) ([]model.Complaint, error) {
	var complaints []model.Complaint
	if err := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Preload("Submitter").
		Order("created_at DESC").
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}
