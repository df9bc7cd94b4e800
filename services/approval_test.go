package services

import (
	"testing"

	"github.com/Mohit9674/Smart-Home-Management/models"

	"github.com/stretchr/testify/require"
)

func TestTransitionStatus(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		changed bool
	}{
		{"pending to approved", models.StatusPending, models.StatusApproved, true},
		{"pending to rejected", models.StatusPending, models.StatusRejected, true},
		{"approved to rejected", models.StatusApproved, models.StatusRejected, true},
		{"rejected to approved", models.StatusRejected, models.StatusApproved, true},
		{"approved to approved is a no-op", models.StatusApproved, models.StatusApproved, false},
		{"rejected to rejected is a no-op", models.StatusRejected, models.StatusRejected, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			request := &models.BookingRequest{Status: tc.from}
			changed := TransitionStatus(request, tc.to)
			require.Equal(t, tc.changed, changed)
			require.Equal(t, tc.to, request.Status)
		})
	}
}

func TestTransitionStatusIsIdempotent(t *testing.T) {
	request := &models.BookingRequest{Status: models.StatusPending}
	require.True(t, TransitionStatus(request, models.StatusApproved))
	// second approval of the same request changes nothing
	require.False(t, TransitionStatus(request, models.StatusApproved))
	require.Equal(t, models.StatusApproved, request.Status)
}

func TestShouldCloseProperty(t *testing.T) {
	available := &models.Property{IsAvailable: true}
	unavailable := &models.Property{IsAvailable: false}

	require.True(t, ShouldCloseProperty(true, available))
	// already unavailable: no flip, no audit row
	require.False(t, ShouldCloseProperty(true, unavailable))
	// flag disabled: approval leaves availability alone
	require.False(t, ShouldCloseProperty(false, available))
	require.False(t, ShouldCloseProperty(true, nil))
}
