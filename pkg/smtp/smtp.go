package smtp

import (
	"bytes"
	"fmt"
	smtpPkg "net/smtp"
	"os"
	"text/template"
)

type BookingConfirmation struct {
	To               string
	FullName         string
	ConfirmationCode string
	BookingRef       string
	FlightID         string
	Route            string
	Date             string
	Time             string
}

type ItfSmtp interface {
	SendBookingConfirmation(c BookingConfirmation) error
}

type smtp struct {
	auth smtpPkg.Auth
	mail string
	addr string
	send func(addr string, a smtpPkg.Auth, from string, to []string, msg []byte) error
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(
	"To: {{.To}}\r\n" +
		"Subject: Xac nhan dat ve {{.ConfirmationCode}}\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n" +
		"Xin chào {{.FullName}},\r\n\r\n" +
		"Đặt vé của bạn đã được xác nhận.\r\n" +
		"Mã xác nhận: {{.ConfirmationCode}}\r\n" +
		"Mã đặt chỗ: {{.BookingRef}}\r\n" +
		"Chuyến bay: {{.FlightID}} ({{.Route}})\r\n" +
		"Ngày bay: {{.Date}} lúc {{.Time}}\r\n\r\n" +
		"Vui lòng có mặt tại sân bay trước 2 tiếng và mang theo CMND/CCCD.\r\n"))

func New() ItfSmtp {
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}

	return &smtp{
		auth: smtpPkg.PlainAuth("", mail, password, host),
		mail: mail,
		addr: host + ":587",
		send: smtpPkg.SendMail,
	}
}

func renderConfirmation(c BookingConfirmation) ([]byte, error) {
	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, c); err != nil {
		return nil, fmt.Errorf("render confirmation mail: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *smtp) SendBookingConfirmation(c BookingConfirmation) error {
	if c.To == "" {
		return fmt.Errorf("missing recipient")
	}

	msg, err := renderConfirmation(c)
	if err != nil {
		return err
	}

	return s.send(s.addr, s.auth, s.mail, []string{c.To}, msg)
}
