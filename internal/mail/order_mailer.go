// Package mail は発注メールの送信。gomail経由でSMTPに出すだけで、
// 在庫ストアには一切依存しない。
package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"inventory/internal/usecase"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type OrderMailer struct {
	cfg SMTPConfig
}

func NewOrderMailer(cfg SMTPConfig) *OrderMailer {
	return &OrderMailer{cfg: cfg}
}

// 件名と本文の文面
func Subject(o usecase.Order) string {
	return "Order of " + o.ProductName
}

func Body(o usecase.Order) string {
	return fmt.Sprintf(
		"%s,\n\nI would like to order: \n\n%d %s at a unit price of $%s.\n\nThank you!",
		o.Supplier, o.Quantity, o.ProductName, o.UnitPrice,
	)
}

func (m *OrderMailer) SendOrder(o usecase.Order) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", o.To)
	msg.SetHeader("Subject", Subject(o))
	msg.SetBody("text/plain", Body(o))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail: send order: %w", err)
	}
	return nil
}
