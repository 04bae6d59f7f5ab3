package controllers

import (
	"bytes"
	"io"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postBooking(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/appointments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestCreateAppointmentValidation(t *testing.T) {
	mockDB(t)

	app := fiber.New()
	app.Post("/appointments", CreateAppointment)

	tests := []struct {
		name string
		body string
		want int
	}{
		{
			"missing client fields",
			`{"provider_id":1,"date":"2026-09-10","start_time":"09:00","visit_type_id":1,"consult_type_id":1,"practice_type_id":1}`,
			fiber.StatusBadRequest,
		},
		{
			"missing catalog types",
			`{"provider_id":1,"client_name":"Ana","phone_number":"1155550000","date":"2026-09-10","start_time":"09:00"}`,
			fiber.StatusBadRequest,
		},
		{
			"bad date",
			`{"provider_id":1,"client_name":"Ana","phone_number":"1155550000","date":"10/09/2026","start_time":"09:00","visit_type_id":1,"consult_type_id":1,"practice_type_id":1}`,
			fiber.StatusBadRequest,
		},
		{
			"bad start time",
			`{"provider_id":1,"client_name":"Ana","phone_number":"1155550000","date":"2026-09-10","start_time":"9am","visit_type_id":1,"consult_type_id":1,"practice_type_id":1}`,
			fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, postBooking(t, app, tt.body))
		})
	}
}

// expectBookingResolve queues the queries the booking transaction runs up to
// the availability re-check: the provider row lock, the weekly schedule with
// one 09:00-10:00 Monday slot, and empty exception tables.
func expectBookingResolve(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM user_accounts WHERE id = $1 FOR UPDATE`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "work_schedules"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "provider_id", "day_of_week", "is_working_day"}).
			AddRow(3, 1, 1, true))
	mock.ExpectQuery(`SELECT \* FROM "available_slots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "work_schedule_id", "start_time", "end_time", "is_available"}).
			AddRow(7, 3, "09:00", "10:00", true))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "unavailable_days"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "unavailable_time_frames"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
}

func TestCreateAppointmentConflictWhenSlotTaken(t *testing.T) {
	mock := mockDB(t)

	mock.ExpectBegin()
	expectBookingResolve(mock)
	// an appointment already holds the 09:00 start, so the re-check fails
	mock.ExpectQuery(`SELECT "start_time" FROM "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"start_time"}).AddRow("09:00"))
	mock.ExpectRollback()

	app := fiber.New()
	app.Post("/appointments", CreateAppointment)

	body := `{"provider_id":1,"client_name":"Ana","phone_number":"1155550000","date":"2026-09-07","start_time":"09:00","visit_type_id":1,"consult_type_id":1,"practice_type_id":1}`
	assert.Equal(t, fiber.StatusConflict, postBooking(t, app, body))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAppointmentBooksFreeSlot(t *testing.T) {
	mock := mockDB(t)

	mock.ExpectBegin()
	expectBookingResolve(mock)
	mock.ExpectQuery(`SELECT "start_time" FROM "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"start_time"}))
	// new client: lookup by phone misses, then the upsert inserts
	mock.ExpectQuery(`SELECT \* FROM "clients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "clients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(`INSERT INTO "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectCommit()

	app := fiber.New()
	app.Post("/appointments", CreateAppointment)

	// non-padded start time must normalize to the configured 09:00 slot
	body := `{"provider_id":1,"client_name":"Ana","phone_number":"1155550000","date":"2026-09-07","start_time":"9:00","visit_type_id":1,"consult_type_id":1,"practice_type_id":1}`
	req := httptest.NewRequest(fiber.MethodPost, "/appointments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"start_time":"09:00"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAppointmentUnknownProvider(t *testing.T) {
	mock := mockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM user_accounts WHERE id = $1 FOR UPDATE`)).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	app := fiber.New()
	app.Post("/appointments", CreateAppointment)

	body := `{"provider_id":99,"client_name":"Ana","phone_number":"1155550000","date":"2026-09-07","start_time":"09:00","visit_type_id":1,"consult_type_id":1,"practice_type_id":1}`
	assert.Equal(t, fiber.StatusNotFound, postBooking(t, app, body))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAppointmentsByDateRequiresProvider(t *testing.T) {
	mockDB(t)

	app := fiber.New()
	app.Get("/appointments/date/:date", GetAppointmentsByDate)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/appointments/date/2026-09-10", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/appointments/date/not-a-date?user_account_id=1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
