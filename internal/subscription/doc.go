// Package subscription orchestrates the signup workflow: validate input,
// store the subscriber as pending, issue a confirmation token, send the
// confirmation email, and later flip the subscriber to confirmed when the
// token comes back.
package subscription
