package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signupweb/gen/signupweb/public/model"
)

type fakeAttempts struct {
	email   string
	limit   int64
	results []model.SignupAttempts
	err     error
}

func (f *fakeAttempts) RecordAttempt(ctx context.Context, requestID, email, outcome string) (model.SignupAttempts, error) {
	return model.SignupAttempts{}, errors.New("read only")
}

func (f *fakeAttempts) RecentAttempts(ctx context.Context, email string, limit int64) ([]model.SignupAttempts, error) {
	f.email = email
	f.limit = limit
	return f.results, f.err
}

func TestPrintAttempts(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	attempts := &fakeAttempts{results: []model.SignupAttempts{
		{ID: 2, RequestID: "req-2", Email: "jan@example.com", Outcome: "registered", CreatedAt: at},
		{ID: 1, RequestID: "req-1", Email: "jan@example.com", Outcome: "rejected", CreatedAt: at.Add(-time.Minute)},
	}}
	var out bytes.Buffer

	err := printAttempts(context.Background(), &out, attempts, "jan@example.com", 5)

	require.NoError(t, err)
	assert.Equal(t, "jan@example.com", attempts.email)
	assert.Equal(t, int64(5), attempts.limit)
	assert.Equal(t,
		"2024-01-02T03:04:05Z  registered        req-2\n"+
			"2024-01-02T03:03:05Z  rejected          req-1\n",
		out.String())
}

func TestPrintAttempts_None(t *testing.T) {
	var out bytes.Buffer

	err := printAttempts(context.Background(), &out, &fakeAttempts{}, "ola@example.com", 10)

	require.NoError(t, err)
	assert.Equal(t, "no attempts for ola@example.com\n", out.String())
}

func TestPrintAttempts_RejectsNonPositiveLimit(t *testing.T) {
	attempts := &fakeAttempts{}

	err := printAttempts(context.Background(), &bytes.Buffer{}, attempts, "jan@example.com", 0)

	assert.ErrorContains(t, err, "--limit")
	assert.Empty(t, attempts.email)
}

func TestAttempts_RequiresDatabase(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REGISTRATION_TIMEOUT", "")
	t.Setenv("SUBMIT_LOCK_TTL", "")

	_, err := runCLI(t, "attempts", "--email", "jan@example.com")

	assert.ErrorContains(t, err, "DATABASE_URL")
}
