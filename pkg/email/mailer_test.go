package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/newsletter/pkg/email"
)

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	valid := email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Test Subject",
		BodyHTML: "<p>Test body</p>",
		BodyText: "Test body",
		Tag:      "test",
	}

	tests := []struct {
		name    string
		mutate  func(*email.SendEmailParams)
		wantErr bool
	}{
		{name: "valid params", mutate: func(p *email.SendEmailParams) {}},
		{name: "valid without tag", mutate: func(p *email.SendEmailParams) { p.Tag = "" }},
		{name: "empty SendTo", mutate: func(p *email.SendEmailParams) { p.SendTo = "" }, wantErr: true},
		{name: "invalid SendTo", mutate: func(p *email.SendEmailParams) { p.SendTo = "not-an-address" }, wantErr: true},
		{name: "empty Subject", mutate: func(p *email.SendEmailParams) { p.Subject = "" }, wantErr: true},
		{name: "empty BodyHTML", mutate: func(p *email.SendEmailParams) { p.BodyHTML = "" }, wantErr: true},
		{name: "empty BodyText", mutate: func(p *email.SendEmailParams) { p.BodyText = "" }, wantErr: true},
		{name: "whitespace only Subject", mutate: func(p *email.SendEmailParams) { p.Subject = "   " }, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			params := valid
			tt.mutate(&params)

			err := params.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, email.ErrInvalidParams)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewPostmarkClient_ConfigValidation(t *testing.T) {
	t.Parallel()

	valid := email.Config{
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		SenderEmail:          "newsletter@example.com",
		ReplyToEmail:         "support@example.com",
	}

	tests := []struct {
		name   string
		mutate func(*email.Config)
	}{
		{name: "missing server token", mutate: func(c *email.Config) { c.PostmarkServerToken = "" }},
		{name: "missing account token", mutate: func(c *email.Config) { c.PostmarkAccountToken = "" }},
		{name: "missing sender email", mutate: func(c *email.Config) { c.SenderEmail = "" }},
		{name: "invalid sender email", mutate: func(c *email.Config) { c.SenderEmail = "not-an-address" }},
		{name: "invalid reply-to email", mutate: func(c *email.Config) { c.ReplyToEmail = "not-an-address" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tt.mutate(&cfg)

			_, err := email.NewPostmarkClient(cfg)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
		})
	}

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		sender, err := email.NewPostmarkClient(valid)
		assert.NoError(t, err)
		assert.NotNil(t, sender)
	})

	t.Run("reply-to defaults to sender", func(t *testing.T) {
		t.Parallel()

		cfg := valid
		cfg.ReplyToEmail = ""
		sender, err := email.NewPostmarkClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, sender)
	})
}
