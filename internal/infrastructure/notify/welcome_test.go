package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-credential-service/internal/domain/entity"
	"github.com/oksasatya/go-credential-service/pkg/mailer"
	mailtpl "github.com/oksasatya/go-credential-service/pkg/mailer/templates"
)

type fakePublisher struct {
	got []any
	err error
}

func (f *fakePublisher) PublishJSON(ctx context.Context, body any) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	f.got = append(f.got, body)
	return f.err
}

func TestUserRegistered_PublishesWelcomeJob(t *testing.T) {
	pub := &fakePublisher{}
	n := NewWelcomeNotifier(pub, "Acme")

	err := n.UserRegistered(context.Background(), &entity.User{ID: "1", Email: "a@x.com", Name: "Ann", PasswordHash: "h"})
	require.NoError(t, err)

	require.Len(t, pub.got, 1)
	job, ok := pub.got[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", job.To)
	assert.Equal(t, mailtpl.Welcome, job.Template)
	assert.Equal(t, "Ann", job.Data["Name"])
	assert.Equal(t, "Acme", job.Data["AppName"])
	assert.NotContains(t, job.Data, "PasswordHash")
}

func TestUserRegistered_PropagatesError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("channel closed")}
	err := NewWelcomeNotifier(pub, "Acme").UserRegistered(context.Background(), &entity.User{Email: "a@x.com"})
	assert.EqualError(t, err, "channel closed")
}
