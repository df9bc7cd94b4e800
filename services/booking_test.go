package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validSubmission() BookingSubmission {
	return BookingSubmission{
		FullName:  "Jane Doe",
		Email:     "jane@example.com",
		Phone:     "+353 86 123 4567",
		StartDate: testNow.AddDate(0, 0, 10),
		Notes:     "Looking forward to it",
	}
}

func noDuplicates(propertyID uint, email string, since time.Time) (bool, error) {
	return false, nil
}

func newValidator() *SubmissionValidator {
	return &SubmissionValidator{Now: fixedClock, HasRecentPending: noDuplicates}
}

func TestValidateAcceptsWellFormedSubmission(t *testing.T) {
	out, fields, err := newValidator().Validate(7, validSubmission())
	require.NoError(t, err)
	require.Empty(t, fields)
	require.Equal(t, "Jane Doe", out.FullName)
	require.Equal(t, "jane@example.com", out.Email)
}

func TestValidateCollapsesNameWhitespace(t *testing.T) {
	in := validSubmission()
	in.FullName = "  Jo   Ann O'Brien  "
	out, fields, err := newValidator().Validate(7, in)
	require.NoError(t, err)
	require.Empty(t, fields)
	require.Equal(t, "Jo Ann O'Brien", out.FullName)
}

func TestValidateNameRules(t *testing.T) {
	cases := []struct {
		name  string
		input string
		ok    bool
	}{
		{"accented letters", "Zoë Müller", true},
		{"hyphen and apostrophe", "Mary-Jane O'Neill", true},
		{"too short", "J", false},
		{"digits", "Jane 2", false},
		{"symbols", "Jane <script>", false},
		{"empty", "   ", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validSubmission()
			in.FullName = tc.input
			_, fields, err := newValidator().Validate(7, in)
			require.NoError(t, err)
			if tc.ok {
				require.NotContains(t, fields, "fullName")
			} else {
				require.Contains(t, fields, "fullName")
			}
		})
	}
}

func TestValidateLowercasesEmail(t *testing.T) {
	in := validSubmission()
	in.Email = "  Jo@Example.COM "
	out, fields, err := newValidator().Validate(7, in)
	require.NoError(t, err)
	require.Empty(t, fields)
	require.Equal(t, "jo@example.com", out.Email)
}

func TestValidatePhoneOptionalButStrict(t *testing.T) {
	in := validSubmission()
	in.Phone = ""
	_, fields, err := newValidator().Validate(7, in)
	require.NoError(t, err)
	require.NotContains(t, fields, "phone")

	in.Phone = "(01) 234-5678"
	_, fields, err = newValidator().Validate(7, in)
	require.NoError(t, err)
	require.NotContains(t, fields, "phone")

	in.Phone = "12345" // too short
	_, fields, err = newValidator().Validate(7, in)
	require.NoError(t, err)
	require.Contains(t, fields, "phone")

	in.Phone = "call me maybe"
	_, fields, err = newValidator().Validate(7, in)
	require.NoError(t, err)
	require.Contains(t, fields, "phone")
}

func TestValidateStartDateBoundaries(t *testing.T) {
	today := date(2026, 8, 30)
	cases := []struct {
		name  string
		start time.Time
		ok    bool
	}{
		{"today", today, true},
		{"yesterday", today.AddDate(0, 0, -1), false},
		{"max advance", today.AddDate(0, 0, MaxAdvanceDays), true},
		{"past max advance", today.AddDate(0, 0, MaxAdvanceDays+1), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validSubmission()
			in.StartDate = tc.start
			_, fields, err := newValidator().Validate(7, in)
			require.NoError(t, err)
			if tc.ok {
				require.NotContains(t, fields, "startDate")
			} else {
				require.Contains(t, fields, "startDate")
			}
		})
	}
}

func TestValidateStartDateIgnoresTimeOfDay(t *testing.T) {
	// A submission later the same day must still count as "today".
	in := validSubmission()
	in.StartDate = time.Date(2026, 8, 30, 0, 30, 0, 0, time.UTC)
	_, fields, err := newValidator().Validate(7, in)
	require.NoError(t, err)
	require.NotContains(t, fields, "startDate")
}

func TestValidateNotesRejectLinks(t *testing.T) {
	for _, notes := range []string{
		"see http://spam.example",
		"see https://spam.example",
		"visit www.spam.example please",
		"visit WWW.SPAM.example please",
	} {
		in := validSubmission()
		in.Notes = notes
		_, fields, err := newValidator().Validate(7, in)
		require.NoError(t, err)
		require.Contains(t, fields, "notes", "notes %q should be rejected", notes)
	}

	in := validSubmission()
	in.Notes = "arriving late, around 10pm"
	_, fields, err := newValidator().Validate(7, in)
	require.NoError(t, err)
	require.NotContains(t, fields, "notes")
}

func TestValidateHoneypot(t *testing.T) {
	in := validSubmission()
	in.Website = "http://bot.example"
	_, fields, err := newValidator().Validate(7, in)
	require.NoError(t, err)
	require.Contains(t, fields, "form")
}

func TestValidateDuplicateWindow(t *testing.T) {
	existingCreatedAt := testNow.Add(-1 * time.Hour)
	v := &SubmissionValidator{
		Now: fixedClock,
		HasRecentPending: func(propertyID uint, email string, since time.Time) (bool, error) {
			require.Equal(t, uint(7), propertyID)
			require.Equal(t, "jane@example.com", email)
			return existingCreatedAt.After(since), nil
		},
	}

	// Pending request from 1 hour ago blocks a resubmission.
	_, fields, err := v.Validate(7, validSubmission())
	require.NoError(t, err)
	require.Contains(t, fields, "form")

	// Same email in different case is still a duplicate.
	in := validSubmission()
	in.Email = "JANE@Example.com"
	_, fields, err = v.Validate(7, in)
	require.NoError(t, err)
	require.Contains(t, fields, "form")

	// Outside the 24h sliding window the submission goes through.
	existingCreatedAt = testNow.Add(-25 * time.Hour)
	_, fields, err = v.Validate(7, validSubmission())
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestValidateDuplicateWindowBounds(t *testing.T) {
	var gotSince time.Time
	v := &SubmissionValidator{
		Now: fixedClock,
		HasRecentPending: func(propertyID uint, email string, since time.Time) (bool, error) {
			gotSince = since
			return false, nil
		},
	}
	_, _, err := v.Validate(7, validSubmission())
	require.NoError(t, err)
	require.Equal(t, testNow.Add(-DuplicateWindow), gotSince)
}

func TestValidateEndToEndScenario(t *testing.T) {
	in := BookingSubmission{
		FullName:  "  Jo   Ann O'Brien  ",
		Email:     "Jo@Example.COM",
		StartDate: testNow.AddDate(0, 0, 10),
	}
	out, fields, err := newValidator().Validate(7, in)
	require.NoError(t, err)
	require.Empty(t, fields)
	require.Equal(t, "Jo Ann O'Brien", out.FullName)
	require.Equal(t, "jo@example.com", out.Email)
	require.Equal(t, date(2026, 9, 9), out.StartDate)
}
