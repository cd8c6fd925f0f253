package email

// Config holds email transport configuration.
// PostmarkServerToken and PostmarkAccountToken are optional to support
// development environments where outbound email is written to disk instead.
// SenderEmail is required as it establishes the sender identity for all
// outbound mail; ReplyToEmail defaults to SenderEmail when empty.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	ReplyToEmail         string `env:"REPLY_TO_EMAIL"`
}
