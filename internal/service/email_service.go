package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/velora-next/internal/config"
	"github.com/velora-next/internal/constants"
	"github.com/velora-next/internal/models"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// OrderEmailInput 订单邮件输入
type OrderEmailInput struct {
	OrderNo     string
	Status      string
	TotalAmount models.Money
	ItemCount   int
	ShipName    string
	ShipCity    string
}

// SendOrderPlacedEmail 发送下单成功通知给客户
func (s *EmailService) SendOrderPlacedEmail(toEmail string, input OrderEmailInput) error {
	subject := fmt.Sprintf("Order %s placed", input.OrderNo)
	body := fmt.Sprintf(
		"Your order %s has been placed.\n\nItems: %d\nTotal: %s\n\nWe will notify you when the status changes.",
		input.OrderNo, input.ItemCount, input.TotalAmount.String(),
	)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendPartnerOrderAlert 发送新订单提醒给配送员
func (s *EmailService) SendPartnerOrderAlert(toEmail string, input OrderEmailInput) error {
	subject := fmt.Sprintf("New order %s awaiting delivery", input.OrderNo)
	body := fmt.Sprintf(
		"A new order %s is ready for pickup.\n\nRecipient: %s\nCity: %s\nItems: %d\nTotal: %s",
		input.OrderNo, input.ShipName, input.ShipCity, input.ItemCount, input.TotalAmount.String(),
	)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendOrderStatusEmail 发送订单状态变更通知给客户
func (s *EmailService) SendOrderStatusEmail(toEmail string, input OrderEmailInput) error {
	status := strings.ToUpper(strings.TrimSpace(input.Status))
	subject := fmt.Sprintf("Order %s is now %s", input.OrderNo, status)
	var body string
	switch status {
	case constants.OrderStatusDelivered:
		body = fmt.Sprintf("Your order %s has been delivered. Thank you for shopping with us.", input.OrderNo)
	case constants.OrderStatusCancelled:
		body = fmt.Sprintf("Your order %s has been cancelled.", input.OrderNo)
	default:
		body = fmt.Sprintf("Your order %s status changed to %s.", input.OrderNo, status)
	}
	return s.sendTextEmail(toEmail, subject, body)
}

// SendPartnerCancelAlert 发送订单取消提醒给配送员
func (s *EmailService) SendPartnerCancelAlert(toEmail string, input OrderEmailInput) error {
	subject := fmt.Sprintf("Order %s cancelled", input.OrderNo)
	body := fmt.Sprintf("Order %s has been cancelled. No further delivery action is needed.", input.OrderNo)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendDeliveryCodeEmail 发送送达确认码给配送员
// 确认码只存在于邮件里，不落库
func (s *EmailService) SendDeliveryCodeEmail(toEmail string, input OrderEmailInput, code string) error {
	subject := fmt.Sprintf("Delivery code for order %s", input.OrderNo)
	body := fmt.Sprintf(
		"Order %s has been marked delivered.\n\nDelivery confirmation code: %s\n\nShare this code with the recipient if asked to confirm handover.",
		input.OrderNo, code,
	)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendCustomEmail 发送测试邮件或自定义邮件
func (s *EmailService) SendCustomEmail(toEmail, subject, body string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "SMTP configuration test"
	}
	body = strings.TrimSpace(body)
	if body == "" {
		body = "This is a test email from Velora. Your SMTP configuration works."
	}
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return normalizeEmailSendError(sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	if s.cfg.UseTLS {
		return normalizeEmailSendError(sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	return normalizeEmailSendError(sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return ErrEmailRecipientRejected
	}
	return err
}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	directKeywords := []string{
		"no such recipient",
		"no such user",
		"recipient not found",
		"recipient address rejected",
		"invalid recipient",
		"user unknown",
		"unknown user",
		"unknown mailbox",
		"mailbox unavailable",
	}
	for _, keyword := range directKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	if strings.Contains(message, "550") {
		hints := []string{"recipient", "user", "mailbox", "address", "rcpt"}
		for _, hint := range hints {
			if strings.Contains(message, hint) {
				return true
			}
		}
	}
	return false
}
