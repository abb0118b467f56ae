package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "20:00", want: "0 0 20 * * *"},
		{in: "07:05", want: "0 5 7 * * *"},
		{in: " 9:30 ", want: "0 30 9 * * *"},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := buildDailySpec(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSchedulerService_ScheduleReport(t *testing.T) {
	s := NewSchedulerService(time.UTC)

	_, err := s.ScheduleInterval(0, func() {})
	assert.Error(t, err)

	_, err = s.ScheduleReport("bogus", 0, func() {})
	assert.Error(t, err)

	daily, err := s.ScheduleReport("20:00", 0, func() {})
	require.NoError(t, err)
	assert.NotZero(t, daily)

	every, err := s.ScheduleReport("bogus", 2*time.Hour, func() {})
	require.NoError(t, err)
	assert.NotEqual(t, daily, every)

	s.Start()
	defer s.Stop()
	assert.False(t, s.Next(daily).IsZero())
}
