// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"clinicbook-backend/config"
	"clinicbook-backend/models"
	"clinicbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents the Analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue   float64            `json:"currentMonthRevenue"`
	MonthGrowth           float64            `json:"monthGrowth"`
	CurrentQuarterRevenue float64            `json:"currentQuarterRevenue"`
	QuarterGrowth         float64            `json:"quarterGrowth"`
	CurrentYearRevenue    float64            `json:"currentYearRevenue"`
	YearGrowth            float64            `json:"yearGrowth"`
	TopTreatments         []TreatmentSummary `json:"topTreatments"`
	TopDoctors            []DoctorSummary    `json:"topDoctors"`
	QuickStats            QuickStatistics    `json:"quickStats"`
}

type TreatmentSummary struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type DoctorSummary struct {
	Name     string  `json:"name"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

type QuickStatistics struct {
	TotalCustomers  int     `json:"totalCustomers"`
	TotalBookings   int     `json:"totalBookings"`
	CancelRate      float64 `json:"cancelRate"`
	AvgBookingValue float64 `json:"avgBookingValue"`
}

// GetReportAnalytics returns the complete analytics summary
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	// Get current time
	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	currentLocation := now.Location()

	// Calculate date ranges
	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, currentLocation)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	currentMonthRevenue, err := rc.getRevenue(firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}

	lastMonthRevenue, err := rc.getRevenue(
		firstOfMonth.AddDate(0, -1, 0),
		lastOfMonth.AddDate(0, -1, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}

	currentQuarterRevenue, err := rc.getRevenue(rc.getQuarterStart(now), rc.getQuarterEnd(now))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quarterly revenue")
		return
	}

	lastQuarterRevenue, err := rc.getRevenue(
		rc.getQuarterStart(now).AddDate(0, -3, 0),
		rc.getQuarterEnd(now).AddDate(0, -3, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last quarter revenue")
		return
	}

	currentYearRevenue, err := rc.getRevenue(
		time.Date(currentYear, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly revenue")
		return
	}

	lastYearRevenue, err := rc.getRevenue(
		time.Date(currentYear-1, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear-1, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year revenue")
		return
	}

	topTreatments, err := rc.getTopTreatments(firstOfMonth, lastOfMonth, 5)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top treatments")
		return
	}

	topDoctors, err := rc.getTopDoctors(firstOfMonth, lastOfMonth, 5)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top doctors")
		return
	}

	quickStats, err := rc.getQuickStatistics()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get statistics")
		return
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   currentMonthRevenue,
		MonthGrowth:           rc.calculateGrowthPercentage(currentMonthRevenue, lastMonthRevenue),
		CurrentQuarterRevenue: currentQuarterRevenue,
		QuarterGrowth:         rc.calculateGrowthPercentage(currentQuarterRevenue, lastQuarterRevenue),
		CurrentYearRevenue:    currentYearRevenue,
		YearGrowth:            rc.calculateGrowthPercentage(currentYearRevenue, lastYearRevenue),
		TopTreatments:         topTreatments,
		TopDoctors:            topDoctors,
		QuickStats:            quickStats,
	}

	c.JSON(http.StatusOK, summary)
}

func (rc *ReportController) getRevenue(start, end time.Time) (float64, error) {
	var revenue float64
	err := config.DB.Model(&models.Booking{}).
		Where("booking_date BETWEEN ? AND ? AND status IN ? AND deleted_at IS NULL",
			utils.DateOf(start), utils.DateOf(end),
			[]models.BookingStatus{models.StatusConfirmed, models.StatusCompleted}).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&revenue).Error
	return revenue, err
}

func (rc *ReportController) getQuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month()) - 1) / 3
	return time.Date(date.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, date.Location())
}

func (rc *ReportController) getQuarterEnd(date time.Time) time.Time {
	return rc.getQuarterStart(date).AddDate(0, 3, -1)
}

func (rc *ReportController) calculateGrowthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return ((current - previous) / previous) * 100
}

func (rc *ReportController) getTopTreatments(start, end time.Time, limit int) ([]TreatmentSummary, error) {
	var treatments []TreatmentSummary
	err := config.DB.Raw(`
        SELECT t.name, COUNT(b.id) AS count, COALESCE(SUM(b.total_amount), 0) AS revenue
        FROM bookings b
        JOIN treatments t ON t.id = b.treatment_id
        WHERE b.booking_date BETWEEN ? AND ?
        AND b.status IN ('confirmed', 'completed') AND b.deleted_at IS NULL
        GROUP BY t.name
        ORDER BY revenue DESC
        LIMIT ?
    `, utils.DateOf(start), utils.DateOf(end), limit).Scan(&treatments).Error
	return treatments, err
}

func (rc *ReportController) getTopDoctors(start, end time.Time, limit int) ([]DoctorSummary, error) {
	var doctors []DoctorSummary
	err := config.DB.Raw(`
        SELECT d.name, COUNT(b.id) AS bookings, COALESCE(SUM(b.total_amount), 0) AS revenue
        FROM bookings b
        JOIN doctors d ON d.id = b.doctor_id
        WHERE b.booking_date BETWEEN ? AND ?
        AND b.status IN ('confirmed', 'completed') AND b.deleted_at IS NULL
        GROUP BY d.name
        ORDER BY bookings DESC
        LIMIT ?
    `, utils.DateOf(start), utils.DateOf(end), limit).Scan(&doctors).Error
	return doctors, err
}

func (rc *ReportController) getQuickStatistics() (QuickStatistics, error) {
	var stats QuickStatistics
	err := config.DB.Raw(`
        SELECT
            (SELECT COUNT(*) FROM customers WHERE deleted_at IS NULL) AS total_customers,
            (SELECT COUNT(*) FROM bookings WHERE deleted_at IS NULL) AS total_bookings,
            (SELECT COALESCE(
                COUNT(*) FILTER (WHERE status = 'cancelled') * 100.0 / NULLIF(COUNT(*), 0), 0)
                FROM bookings WHERE deleted_at IS NULL) AS cancel_rate,
            (SELECT COALESCE(AVG(total_amount), 0) FROM bookings
                WHERE status IN ('confirmed', 'completed') AND deleted_at IS NULL) AS avg_booking_value
    `).Scan(&stats).Error
	return stats, err
}
