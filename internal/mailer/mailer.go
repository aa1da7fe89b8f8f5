package mailer

import "gopkg.in/gomail.v2"

// Mailer is the transport collaborator. A false result and an error are
// equivalent from the caller's point of view: the message did not go out.
type Mailer interface {
	Send(to []string, subject, textBody, htmlBody string) (bool, error)
}

// SMTP delivers through gomail with a plain-text body and an HTML
// alternative part.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s *SMTP) Send(to []string, subject, textBody, htmlBody string) (bool, error) {
	if s.From == "" || s.Password == "" {
		// not configured; treated as a failed delivery, not a crash
		return false, nil
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return false, err
	}
	return true, nil
}
