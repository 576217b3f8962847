package utils

import (
	"fmt"
	"net/smtp"
	"os"
)

// SendMail sends a plain-text email using SMTP.
func SendMail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")

	if host == "" || port == "" || user == "" || pass == "" {
		return fmt.Errorf("smtp not configured")
	}

	addr := host + ":" + port
	from := user

	msg := "From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n"

	auth := smtp.PlainAuth("", user, pass, host)
	return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
}

// SendOTPEmail delivers a one-time code to the given address.
func SendOTPEmail(to, otp string) error {
	body := fmt.Sprintf(
		"Your Bakery verification code is %s.\n\nIt expires in 5 minutes. If you did not request this, ignore this email.",
		otp,
	)
	return SendMail(to, "Your Bakery verification code", body)
}

// SendContactMail forwards a contact-us submission to the bakery inbox.
func SendContactMail(name, email, message string) error {
	inbox := os.Getenv("CONTACT_INBOX")
	if inbox == "" {
		inbox = os.Getenv("SMTP_USER")
	}
	body := fmt.Sprintf("From: %s <%s>\n\n%s", name, email, message)
	return SendMail(inbox, "New contact-us message", body)
}
