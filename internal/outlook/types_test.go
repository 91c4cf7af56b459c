package outlook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRowIsNote(t *testing.T) {
	assert.True(t, MessageRow{Class: "IPM.Note"}.IsNote())
	assert.True(t, MessageRow{Class: "IPM.Note.SMIME"}.IsNote())
	assert.True(t, MessageRow{Class: ""}.IsNote())
	assert.False(t, MessageRow{Class: "IPM.Schedule.Meeting.Request"}.IsNote())
	assert.False(t, MessageRow{Class: "IPM.Appointment"}.IsNote())
}

func TestItemIsAppointment(t *testing.T) {
	assert.True(t, (&Item{Class: "IPM.Appointment"}).IsAppointment())
	assert.True(t, (&Item{Class: "IPM.Appointment.Custom"}).IsAppointment())
	assert.False(t, (&Item{Class: "IPM.Note"}).IsAppointment())
	assert.False(t, (&Item{Class: ""}).IsAppointment())
}

func TestResponseStatusName(t *testing.T) {
	assert.Equal(t, "none", ResponseStatusName(0))
	assert.Equal(t, "organized", ResponseStatusName(1))
	assert.Equal(t, "tentative", ResponseStatusName(2))
	assert.Equal(t, "accepted", ResponseStatusName(3))
	assert.Equal(t, "declined", ResponseStatusName(4))
	assert.Equal(t, "not_responded", ResponseStatusName(5))
	assert.Equal(t, "42", ResponseStatusName(42))
}

func TestBusyStatusName(t *testing.T) {
	assert.Equal(t, "free", BusyStatusName(0))
	assert.Equal(t, "tentative", BusyStatusName(1))
	assert.Equal(t, "busy", BusyStatusName(2))
	assert.Equal(t, "out_of_office", BusyStatusName(3))
	assert.Equal(t, "working_elsewhere", BusyStatusName(4))
	assert.Equal(t, "9", BusyStatusName(9))
}

func TestParseResponseStatus(t *testing.T) {
	code, err := ParseResponseStatus("accepted")
	require.NoError(t, err)
	assert.Equal(t, 3, code)

	code, err = ParseResponseStatus("Not_Responded")
	require.NoError(t, err)
	assert.Equal(t, 5, code)

	_, err = ParseResponseStatus("maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepted")
	assert.Contains(t, err.Error(), "maybe")
}

func TestResponseStatusValues(t *testing.T) {
	assert.Equal(t, []string{"accepted", "declined", "none", "not_responded", "organized", "tentative"}, ResponseStatusValues())
}
