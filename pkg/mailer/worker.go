package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mailtpl "github.com/oksasatya/go-credential-service/pkg/mailer/templates"
)

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// ErrPermanent marks jobs that will never succeed and must not be requeued.
var ErrPermanent = errors.New("permanent email job failure")

// Worker turns queued EmailJobs into delivered messages.
type Worker struct {
	Sender      Sender
	SendTimeout time.Duration
}

func NewWorker(s Sender) *Worker {
	return &Worker{Sender: s, SendTimeout: 15 * time.Second}
}

// Handle decodes, renders and sends one queue message. Errors wrapping
// ErrPermanent should be dropped; any other error is transient.
func (w *Worker) Handle(ctx context.Context, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: bad message: %v", ErrPermanent, err)
	}
	if job.To == "" {
		return fmt.Errorf("%w: missing recipient", ErrPermanent)
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		data, err := mailtpl.FromMap(job.Data)
		if err != nil {
			return fmt.Errorf("%w: bad template data: %v", ErrPermanent, err)
		}
		if data.Email == "" {
			data.Email = job.To
		}
		subject, text, html, err = mailtpl.Render(job.Template, data)
		if err != nil {
			return fmt.Errorf("%w: render %s: %v", ErrPermanent, job.Template, err)
		}
	}
	if subject == "" || (text == "" && html == "") {
		return fmt.Errorf("%w: empty message", ErrPermanent)
	}

	c, cancel := context.WithTimeout(ctx, w.SendTimeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}
