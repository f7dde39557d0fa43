package services

import (
	"api/config"
	"fmt"
	"net/smtp"
	"strings"
)

type EmailService struct {
	host     string
	port     string
	username string
	password string
}

func NewEmailService() *EmailService {
	return &EmailService{
		host:     config.MailHost,
		port:     config.MailPort,
		username: config.MailUsername,
		password: config.MailPassword,
	}
}

func (s *EmailService) send(to string, msg []byte) error {
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	return smtp.SendMail(s.host+":"+s.port, auth, s.username, []string{to}, msg)
}

func (s *EmailService) SendPasswordResetEmail(to, username, resetToken string) error {
	resetLink := fmt.Sprintf(config.ClientUrl+"/reset-password?token=%s", resetToken)

	htmlTemplate := strings.TrimSpace(`
To: %s
MIME-version: 1.0
Content-Type: text/html; charset="UTF-8"
Subject: Password Reset Request - CyberLab

<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Password Reset</title>
</head>
<body style="background-color: #f9f9f9; margin: 0; padding: 0; font-family: Arial, sans-serif;">
    <table width="100%%" cellpadding="0" cellspacing="0" style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <tr>
            <td style="background: #1e40af; padding: 40px 20px; text-align: center; border-radius: 12px;">
                <h1 style="color: #ffffff; margin-bottom: 30px; font-size: 24px;">Password Reset Request</h1>
                <p style="color: #e5e7eb; margin-bottom: 10px; font-size: 16px;">Hello %s,</p>
                <p style="color: #e5e7eb; margin-bottom: 30px; font-size: 16px;">We received a request to reset your CyberLab password. Click the button below to choose a new one. This link will expire in 24 hours.</p>
                <a href="%s" style="display: inline-block; background-color: #d97706; color: #ffffff; text-decoration: none; padding: 12px 30px; border-radius: 25px; font-weight: bold; margin-bottom: 30px;">Reset Password</a>
                <p style="color: #9ca3af; font-size: 14px;">If you didn't request this password reset, please ignore this email. Your password will remain unchanged.</p>
            </td>
        </tr>
        <tr>
            <td style="text-align: center; padding-top: 20px;">
                <p style="color: #6b7280; font-size: 14px;">This is an automated message from CyberLab. Please do not reply to this email.</p>
            </td>
        </tr>
    </table>
</body>
</html>
`)

	msg := []byte(fmt.Sprintf(htmlTemplate, to, username, resetLink))
	return s.send(to, msg)
}

func (s *EmailService) SendWelcomeEmail(to, username string) error {
	htmlTemplate := strings.TrimSpace(`
To: %s
MIME-version: 1.0
Content-Type: text/html; charset="UTF-8"
Subject: Welcome to CyberLab

<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Welcome</title>
</head>
<body style="background-color: #f9f9f9; margin: 0; padding: 0; font-family: Arial, sans-serif;">
    <table width="100%%" cellpadding="0" cellspacing="0" style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <tr>
            <td style="background: #1e40af; padding: 40px 20px; text-align: center; border-radius: 12px;">
                <h1 style="color: #ffffff; margin-bottom: 30px; font-size: 24px;">Welcome to CyberLab!</h1>
                <p style="color: #e5e7eb; margin-bottom: 10px; font-size: 16px;">Hello %s,</p>
                <p style="color: #e5e7eb; margin-bottom: 30px; font-size: 16px;">Your account has been successfully created. You can now start exploring cybersecurity challenges and improving your skills.</p>
                <a href="%s" style="display: inline-block; background-color: #d97706; color: #ffffff; text-decoration: none; padding: 12px 30px; border-radius: 25px; font-weight: bold; margin-bottom: 30px;">Get Started</a>
            </td>
        </tr>
        <tr>
            <td style="text-align: center; padding-top: 20px;">
                <p style="color: #6b7280; font-size: 14px;">This is an automated message from CyberLab. Please do not reply to this email.</p>
            </td>
        </tr>
    </table>
</body>
</html>
`)

	msg := []byte(fmt.Sprintf(htmlTemplate, to, username, config.ClientUrl))
	return s.send(to, msg)
}

// SendSupportEmail forwards a support request to the platform mailbox
func (s *EmailService) SendSupportEmail(name, email, issueType, subject, message string) error {
	template := strings.TrimSpace(`
To: %s
MIME-version: 1.0
Content-Type: text/plain; charset="UTF-8"
Subject: [CyberLab Support] [%s] %s

From: %s <%s>

%s
`)

	msg := []byte(fmt.Sprintf(template, s.username, issueType, subject, name, email, message))
	return s.send(s.username, msg)
}
