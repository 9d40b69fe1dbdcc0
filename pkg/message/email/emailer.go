package mailer

// ResetSender 重置密码邮件发送接口
// 实现可替换（SMTP、SendGrid、AWS SES 等）
type ResetSender interface {
	// SendResetCode 发送密码重置验证码邮件
	SendResetCode(to, code string) error
}
