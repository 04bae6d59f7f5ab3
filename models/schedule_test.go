package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAvailableSlotValidation(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"valid range", "09:00", "10:00", false},
		{"end equals start", "09:00", "09:00", true},
		{"end before start", "10:00", "09:00", true},
		{"bad start", "9am", "10:00", true},
		{"bad end", "09:00", "25:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := AvailableSlot{StartTime: tt.start, EndTime: tt.end}
			err := s.BeforeSave(nil)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUnavailableDayRejectsPastDates(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	d := UnavailableDay{Date: yesterday}
	assert.Error(t, d.BeforeCreate(nil))

	today := time.Now().Format("2006-01-02")
	d = UnavailableDay{Date: today}
	assert.NoError(t, d.BeforeCreate(nil))

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	d = UnavailableDay{Date: tomorrow}
	assert.NoError(t, d.BeforeCreate(nil))
}

func TestUnavailableTimeFrameValidation(t *testing.T) {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	f := UnavailableTimeFrame{Date: tomorrow, StartTime: "09:00", EndTime: "09:30"}
	assert.NoError(t, f.BeforeCreate(nil))

	f = UnavailableTimeFrame{Date: tomorrow, StartTime: "09:30", EndTime: "09:00"}
	assert.Error(t, f.BeforeCreate(nil))

	f = UnavailableTimeFrame{Date: "not-a-date", StartTime: "09:00", EndTime: "09:30"}
	assert.Error(t, f.BeforeCreate(nil))
}
