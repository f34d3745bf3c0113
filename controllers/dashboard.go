package controllers

import (
	"fmt"
	"net/http"
	"time"

	"clinicbook-backend/config"
	"clinicbook-backend/models"
	"clinicbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TotalCustomers  int64            `json:"totalCustomers"`
	MonthlyRevenue  float64          `json:"monthlyRevenue"`
	TodayBookings   int64            `json:"todayBookings"`
	PendingBookings int64            `json:"pendingBookings"`
	UpcomingToday   []TodayBooking   `json:"upcomingToday"`
	RecentBookings  []RecentBooking  `json:"recentBookings"`
}

type TodayBooking struct {
	Time      string `json:"time"`
	Customer  string `json:"customer"`
	Doctor    string `json:"doctor"`
	Treatment string `json:"treatment"`
	Status    string `json:"status"`
}

type RecentBooking struct {
	Customer  string `json:"customer"`
	Treatment string `json:"treatment"`
	BookedFor string `json:"bookedFor"` // e.g. "Today", "Tomorrow", "3 days"
}

func GetDashboardOverview(c *gin.Context) {
	now := time.Now()
	today := utils.DateOf(now)

	// Dashboard is the hottest read in the admin UI; serve from cache and
	// let booking mutations invalidate by date.
	var overview DashboardOverview
	if config.Cache != nil {
		hit, err := config.Cache.GetJSON(c.Request.Context(), config.DashboardKey(today), &overview)
		if err == nil && hit {
			c.JSON(http.StatusOK, overview)
			return
		}
	}

	// Total Customers
	var totalCustomers int64
	config.DB.Model(&models.Customer{}).Where("deleted_at IS NULL").Count(&totalCustomers)

	// This Month's Revenue (confirmed and completed bookings)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthlyRevenue float64
	config.DB.Model(&models.Booking{}).
		Where("booking_date >= ? AND status IN ? AND deleted_at IS NULL",
			utils.DateOf(firstOfMonth),
			[]models.BookingStatus{models.StatusConfirmed, models.StatusCompleted}).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&monthlyRevenue)

	// Today's bookings
	var todayBookings int64
	config.DB.Model(&models.Booking{}).
		Where("booking_date = ? AND status IN ? AND deleted_at IS NULL", today,
			[]models.BookingStatus{models.StatusPending, models.StatusConfirmed}).
		Count(&todayBookings)

	// Pending bookings awaiting confirmation
	var pendingBookings int64
	config.DB.Model(&models.Booking{}).
		Where("status = ? AND deleted_at IS NULL", models.StatusPending).
		Count(&pendingBookings)

	// Today's upcoming appointments in start order
	var upcomingToday []TodayBooking
	config.DB.Raw(`
        SELECT b.booking_time AS time,
               COALESCE(c.name, 'Walk-in') AS customer,
               COALESCE(d.name, 'Unassigned') AS doctor,
               t.name AS treatment,
               b.status
        FROM bookings b
        LEFT JOIN customers c ON c.id = b.customer_id
        LEFT JOIN doctors d ON d.id = b.doctor_id
        JOIN treatments t ON t.id = b.treatment_id
        WHERE b.booking_date = ? AND b.status IN ('pending', 'confirmed') AND b.deleted_at IS NULL
        ORDER BY b.booking_time ASC
        LIMIT 7
    `, today).Scan(&upcomingToday)

	// Most recently created bookings
	var recentBookings []RecentBooking
	type recentRow struct {
		Customer    string
		Treatment   string
		BookingDate string
	}
	var rows []recentRow
	config.DB.Raw(`
        SELECT COALESCE(c.name, 'Walk-in') AS customer,
               t.name AS treatment,
               b.booking_date
        FROM bookings b
        LEFT JOIN customers c ON c.id = b.customer_id
        JOIN treatments t ON t.id = b.treatment_id
        WHERE b.deleted_at IS NULL
        ORDER BY b.created_at DESC
        LIMIT 5
    `).Scan(&rows)

	for _, r := range rows {
		bookedFor := r.BookingDate
		if d, err := time.ParseInLocation("2006-01-02", r.BookingDate, now.Location()); err == nil {
			switch days := utils.DaysBetween(now, d); {
			case days == 0:
				bookedFor = "Today"
			case days == 1:
				bookedFor = "Tomorrow"
			case days > 1:
				bookedFor = fmt.Sprintf("%d days", days)
			}
		}
		recentBookings = append(recentBookings, RecentBooking{
			Customer:  r.Customer,
			Treatment: r.Treatment,
			BookedFor: bookedFor,
		})
	}

	overview = DashboardOverview{
		TotalCustomers:  totalCustomers,
		MonthlyRevenue:  monthlyRevenue,
		TodayBookings:   todayBookings,
		PendingBookings: pendingBookings,
		UpcomingToday:   upcomingToday,
		RecentBookings:  recentBookings,
	}

	if config.Cache != nil {
		config.Cache.SetJSON(c.Request.Context(), config.DashboardKey(today), overview, time.Minute)
	}

	c.JSON(http.StatusOK, overview)
}
