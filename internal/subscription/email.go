package subscription

import (
	"fmt"
	"net/url"

	"github.com/dmitrymomot/newsletter/internal/subscriber"
	"github.com/dmitrymomot/newsletter/pkg/email"
)

// confirmationTag labels confirmation emails for provider-side analytics.
const confirmationTag = "subscription-confirmation"

// ConfirmationPath is the route a confirmation link points at; the token
// travels in the subscription_token query parameter.
const ConfirmationPath = "/subscriptions/confirm"

// ConfirmationLink builds the full confirmation URL for a token.
func ConfirmationLink(baseURL, tok string) string {
	return fmt.Sprintf("%s%s?subscription_token=%s", baseURL, ConfirmationPath, url.QueryEscape(tok))
}

func confirmationEmail(sub subscriber.Subscriber, baseURL, tok string) email.SendEmailParams {
	link := ConfirmationLink(baseURL, tok)
	return email.SendEmailParams{
		SendTo:  sub.Email,
		Subject: "Confirm your subscription",
		BodyHTML: fmt.Sprintf(
			"<p>Welcome to our newsletter, %s!</p><p>Click <a href=%q>here</a> to confirm your subscription.</p>",
			sub.Name, link,
		),
		BodyText: fmt.Sprintf(
			"Welcome to our newsletter, %s!\nVisit %s to confirm your subscription.\n",
			sub.Name, link,
		),
		Tag: confirmationTag,
	}
}
