// services/reminder_service.go
package services

import (
	"log"
	"os"
	"strings"
	"time"

	"clinicbook-backend/models"
	"clinicbook-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendBookingReminders)

	c.Start()
	log.Println("Reminder scheduler started")
}

// SendBookingReminders messages every customer with an active booking
// tomorrow. Failures are logged per booking and never abort the run.
func (s *ReminderService) SendBookingReminders() {
	log.Println("Starting booking reminder processing...")

	tomorrow := utils.DateOf(time.Now().AddDate(0, 0, 1))

	var bookings []models.Booking
	err := s.db.
		Preload("Customer").
		Preload("Treatment").
		Where("booking_date = ? AND status IN ?", tomorrow,
			[]models.BookingStatus{models.StatusPending, models.StatusConfirmed}).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Failed to fetch bookings for %s: %v", tomorrow, err)
		return
	}

	// Get active template
	var template models.ReminderTemplate
	if err := s.db.Where("type = ? AND is_active = true", "booking").
		First(&template).Error; err != nil {
		log.Printf("No active booking reminder template: %v", err)
		return
	}

	for _, booking := range bookings {
		if booking.Customer == nil || booking.Customer.Phone == "" {
			continue
		}
		s.sendReminder(booking, template)
	}

	log.Println("Booking reminder processing completed")
}

func (s *ReminderService) sendReminder(booking models.Booking, template models.ReminderTemplate) {
	customer := booking.Customer

	// Replace placeholders in the template
	message := strings.ReplaceAll(template.Message, "[CustomerName]", customer.Name)
	message = strings.ReplaceAll(message, "[TreatmentName]", booking.Treatment.Name)
	message = strings.ReplaceAll(message, "[Time]", booking.BookingTime)

	// Determine channel (WhatsApp if available, else SMS)
	channel := "sms"
	var to string

	// Use WhatsApp if phone is in E.164 format and starts with '+'
	if strings.HasPrefix(customer.Phone, "+") {
		to = "whatsapp:" + customer.Phone
		channel = "whatsapp"
	} else {
		to = customer.Phone
	}

	// Send message via Twilio
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	// Use WhatsApp sender if available
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", customer.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", customer.Phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", customer.Phone)
	}

	// Log the reminder
	reminderLog := models.ReminderLog{
		BookingID:    booking.ID,
		CustomerID:   booking.CustomerID,
		TemplateID:   template.ID,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for booking %s: %v", booking.ID, err)
	}
}
