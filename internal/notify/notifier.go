package notify

import (
	"fmt"
	"io"
	"net/http"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"onboardhub/internal/config"
)

// Notifier is the outbound delivery capability. Implementations report
// per-send failure through the error; no retries happen at this layer.
type Notifier interface {
	SendEmail(to, subject, htmlBody string) error
	SendMessage(to, body string) error
}

// Service sends email over SMTP and WhatsApp through the Twilio REST API.
// In simulate mode every send succeeds and is only logged, for environments
// without credentials.
type Service struct {
	cfg        config.NotifyConfig
	httpClient *http.Client
	log        *zap.SugaredLogger
}

func NewService(cfg config.NotifyConfig, log *zap.SugaredLogger) *Service {
	return &Service{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

func (s *Service) SendEmail(to, subject, htmlBody string) error {
	if s.cfg.Simulate {
		s.log.Infow("simulate email send", "to", to, "subject", subject)
		return nil
	}
	if s.cfg.EmailUser == "" || s.cfg.EmailPassword == "" {
		return fmt.Errorf("email credentials not configured")
	}

	var msg strings.Builder
	msg.WriteString("From: " + s.cfg.EmailUser + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPServer, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.EmailUser, s.cfg.EmailPassword, s.cfg.SMTPServer)
	if err := smtp.SendMail(addr, auth, s.cfg.EmailUser, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}
	return nil
}

func (s *Service) SendMessage(to, body string) error {
	if s.cfg.Simulate {
		s.log.Infow("simulate whatsapp send", "to", to)
		return nil
	}
	if s.cfg.TwilioAccountSID == "" || s.cfg.TwilioAuthToken == "" || s.cfg.TwilioWhatsAppFrom == "" {
		return fmt.Errorf("twilio credentials not configured")
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.cfg.TwilioAccountSID)
	form := url.Values{}
	form.Set("From", "whatsapp:"+s.cfg.TwilioWhatsAppFrom)
	form.Set("To", "whatsapp:"+to)
	form.Set("Body", body)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build whatsapp request failed: %w", err)
	}
	req.SetBasicAuth(s.cfg.TwilioAccountSID, s.cfg.TwilioAuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp response status %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}
