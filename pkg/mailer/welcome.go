package mailer

import "fmt"

// WelcomeJob builds the registration welcome email for a new user.
func WelcomeJob(to, firstName string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Welcome to the property marketplace",
		Text: fmt.Sprintf(
			"Hi %s,\n\nYour account is ready. Sign in with your email to start browsing and publishing listings.\n",
			firstName),
	}
}
