package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/reservalo/booking-api/db"
	"github.com/reservalo/booking-api/models"
	"github.com/reservalo/booking-api/utils"
)

// StartCronJobs initializes and starts the cron scheduler for appointment reminders
func StartCronJobs() {
	c := cron.New()
	// Run every minute to check for appointments in the next hour
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
}

// sendAppointmentReminders mails clients roughly an hour before their
// appointment and stamps ReminderSentAt so each booking is reminded once.
func sendAppointmentReminders() {
	now := time.Now()
	today := now.Format(utils.DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(utils.DateLayout)

	var appointments []models.Appointment
	err := db.DB.Preload("Client").Preload("Provider").
		Where("status = ? AND reminder_sent_at IS NULL AND date IN (?, ?)",
			models.StatusScheduled, today, tomorrow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for i := range appointments {
		appointment := &appointments[i]
		start, err := startAt(appointment)
		if err != nil {
			log.Printf("Skipping reminder for appointment %d: %v", appointment.ID, err)
			continue
		}

		// reminder window: appointment starts in 55 to 65 minutes
		lead := start.Sub(now)
		if lead < 55*time.Minute || lead > 65*time.Minute {
			continue
		}
		if appointment.Client.Email == "" {
			continue
		}

		if err := sendReminderEmail(appointment, start); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}

		sentAt := time.Now()
		if err := db.DB.Model(appointment).Update("reminder_sent_at", sentAt).Error; err != nil {
			log.Printf("Failed to mark reminder sent for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Client.Email)
	}
}

func startAt(a *models.Appointment) (time.Time, error) {
	day, err := utils.ParseDate(a.Date)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := utils.ParseClock(a.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment, start time.Time) error {
	subject := "Recordatorio: turno en una hora"
	body := fmt.Sprintf(`
		<p>Hola %s,</p>
		<p>Te recordamos tu turno de hoy:</p>
		<ul>
			<li><strong>Profesional:</strong> %s</li>
			<li><strong>Fecha:</strong> %s</li>
			<li><strong>Hora:</strong> %s</li>
		</ul>
		<p>Si necesitás reprogramar o cancelar, comunicate lo antes posible.</p>
	`, appointment.Client.Name, appointment.Provider.Name,
		start.Format("02/01/2006"), appointment.StartTime)

	return utils.SendEmail(appointment.Client.Email, subject, body)
}
