// Package messaging dispatches verification codes over SMS and email and
// owns the user-facing notification texts.
package messaging

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Messages holds the notification templates loaded from messages.yaml.
// Placeholders use {{name}} syntax.
type Messages struct {
	SMS struct {
		VerificationBody string `yaml:"verification_body"`
	} `yaml:"sms"`
	Email struct {
		VerificationSubject string `yaml:"verification_subject"`
		VerificationBody    string `yaml:"verification_body"`
	} `yaml:"email"`
	Notifications struct {
		CodeSent string `yaml:"code_sent"`
	} `yaml:"notifications"`
}

func LoadMessages(path string) (*Messages, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read messages file: %w", err)
	}

	var m Messages
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse messages file: %w", err)
	}

	if m.SMS.VerificationBody == "" || m.Email.VerificationBody == "" {
		return nil, fmt.Errorf("messages file %s is missing verification templates", path)
	}

	return &m, nil
}

func (m *Messages) SMSBody(code string) string {
	return render(m.SMS.VerificationBody, map[string]string{"code": code})
}

func (m *Messages) EmailSubject() string {
	return m.Email.VerificationSubject
}

func (m *Messages) EmailBody(code string) string {
	return render(m.Email.VerificationBody, map[string]string{"code": code})
}

// CodeSentNotification is the human-readable confirmation shown after a
// dispatch, with the destination already masked.
func (m *Messages) CodeSentNotification(maskedDestination string) string {
	return render(m.Notifications.CodeSent, map[string]string{"destination": maskedDestination})
}

func render(template string, vars map[string]string) string {
	out := template
	for name, value := range vars {
		out = strings.ReplaceAll(out, "{{"+name+"}}", value)
	}
	return strings.TrimRight(out, "\n")
}
