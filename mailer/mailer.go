// Package mailer sends the order-confirmation email. Sending is
// fire-and-forget: a mail failure is logged and never fails the order.
package mailer

import (
	"fmt"

	"github.com/inkpress/bookshop-backend-go/config"
	"github.com/inkpress/bookshop-backend-go/models"
	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

type Mailer struct {
	cfg config.SMTP
	log *logrus.Logger
}

func New(cfg config.SMTP, log *logrus.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

func (m *Mailer) Enabled() bool {
	return m.cfg.Host != "" && m.cfg.From != ""
}

// SendOrderConfirmation mails the customer a summary of their confirmed
// order. The send runs on its own goroutine so the order response never
// waits on SMTP.
func (m *Mailer) SendOrderConfirmation(order *models.Order) {
	if !m.Enabled() {
		return
	}

	go func() {
		if err := m.send(order); err != nil {
			m.log.WithError(err).WithField("orderId", order.ID).Warn("order confirmation mail failed")
		}
	}()
}

func (m *Mailer) send(order *models.Order) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return err
	}
	if err := msg.To(order.Email); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Order %s confirmed", order.ID))
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Hi %s,\n\nYour %s order is confirmed.\nAmount payable: %d (%s)\nOrder id: %s\n\nThank you for reading with us!\n",
		order.Name, order.Variant, order.Price, order.PaymentMethod, order.ID,
	))

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return err
	}
	return client.DialAndSend(msg)
}
