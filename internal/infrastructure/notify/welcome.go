// Package notify turns domain events into queued email jobs.
package notify

import (
	"context"
	"time"

	"github.com/oksasatya/go-credential-service/internal/domain/entity"
	"github.com/oksasatya/go-credential-service/pkg/mailer"
	mailtpl "github.com/oksasatya/go-credential-service/pkg/mailer/templates"
)

// Publisher enqueues a JSON message; helpers.RabbitPublisher implements it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// WelcomeNotifier enqueues a welcome email for each registered user.
type WelcomeNotifier struct {
	Pub            Publisher
	AppName        string
	PublishTimeout time.Duration
}

func NewWelcomeNotifier(pub Publisher, appName string) *WelcomeNotifier {
	return &WelcomeNotifier{Pub: pub, AppName: appName, PublishTimeout: 3 * time.Second}
}

func (n *WelcomeNotifier) UserRegistered(ctx context.Context, u *entity.User) error {
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data: mailtpl.ToMap(mailtpl.EmailData{
			Name:    u.Name,
			Email:   u.Email,
			AppName: n.AppName,
		}),
	}
	c, cancel := context.WithTimeout(ctx, n.PublishTimeout)
	defer cancel()
	return n.Pub.PublishJSON(c, job)
}
