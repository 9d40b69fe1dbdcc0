package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"time"
)

// Mailer SMTP 邮件发送器（实现 ResetSender 接口）
type Mailer struct {
	Host     string
	Port     string
	Username string
	Password string
}

var _ ResetSender = (*Mailer)(nil)

// NewMailer 创建邮件发送器
func NewMailer(host, port, username, password string) *Mailer {
	return &Mailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
	}
}

// SendResetCode 发送密码重置验证码邮件
func (m *Mailer) SendResetCode(to, code string) error {
	subject := "Seu Código de Recuperação de Senha - Echo"
	body := fmt.Sprintf(`
	<html>
	<body>
		<h2>Recuperação de Senha - Echo</h2>
		<p>Seu código de verificação é: <strong>%s</strong></p>
		<p>Use este código em até 5 minutos para redefinir sua senha.</p>
		<p>Se não foi você, ignore este e-mail.</p>
	</body>
	</html>
	`, code)

	return m.sendEmail(to, subject, body)
}

// sendEmail 实际发送邮件，失败重试两次
func (m *Mailer) sendEmail(to, subject, body string) error {
	headers := map[string]string{
		"From":         m.Username,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n" + body

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)

	const maxRetries = 2
	var err error
	for i := 0; i <= maxRetries; i++ {
		err = smtp.SendMail(
			m.Host+":"+m.Port,
			auth,
			m.Username,
			[]string{to},
			[]byte(message),
		)
		if err == nil {
			return nil
		}
		if i < maxRetries {
			log.Printf("邮件发送失败，重试中 (%d/%d): %v", i+1, maxRetries, err)
			time.Sleep(1 * time.Second)
		}
	}

	return fmt.Errorf("邮件发送失败: %w", err)
}
