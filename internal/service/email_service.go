package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string, debug bool) (*EmailService, error) {
	// If fromEmail is empty, create a disabled service
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		if debug {
			log.Println("[DEBUG] Email service will skip sending all emails")
		}
		return &EmailService{
			enabled: false,
			debug:   debug,
		}, nil
	}

	if debug {
		log.Printf("[DEBUG] Initializing email service with AWS SES")
		log.Printf("[DEBUG] AWS Region: %s", awsRegion)
		log.Printf("[DEBUG] From Email: %s", fromEmail)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
		debug:      debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcomeEmail sends a welcome email to new teacher accounts
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): welcome to %s", toEmail)
		return nil
	}

	subject := "Welcome to English Arcade!"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #4a90e2; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Welcome to English Arcade!</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>Thank you for creating your English Arcade account! You can now build vocabulary worksheets, print wordtests, and run grammar mini-games with your classes.</p>
			<p>Here's what you can do next:</p>
			<ul>
				<li>Paste a passage and extract a word list</li>
				<li>Pick a worksheet layout and print it as a PDF</li>
				<li>Save worksheets and share them with colleagues</li>
				<li>Run arcade games from your grammar lesson lists</li>
			</ul>
			<p style="text-align: center;">
				<a href="%s/login" class="button">Get Started</a>
			</p>
		</div>
		<div class="footer">
			<p>This is an automated email from English Arcade. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, toName, s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

Thank you for creating your English Arcade account! You can now build vocabulary worksheets, print wordtests, and run grammar mini-games with your classes.

Here's what you can do next:
- Paste a passage and extract a word list
- Pick a worksheet layout and print it as a PDF
- Save worksheets and share them with colleagues
- Run arcade games from your grammar lesson lists

Get started: %s/login

---
This is an automated email from English Arcade. Please do not reply.
`, toName, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendWorksheetShareEmail sends a link to a saved worksheet to a
// colleague's address.
func (s *EmailService) SendWorksheetShareEmail(ctx context.Context, toEmail, fromName, title string, worksheetID int64) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): worksheet share to %s", toEmail)
		return nil
	}

	if title == "" {
		title = "Untitled worksheet"
	}
	shareLink := fmt.Sprintf("%s/worksheets/%d", s.appBaseURL, worksheetID)

	subject := fmt.Sprintf("%s shared a worksheet with you: %s", fromName, title)
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #4a90e2; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Worksheet Shared</h1>
		</div>
		<div class="content">
			<p>%s has shared the worksheet <strong>%s</strong> with you on English Arcade.</p>
			<p style="text-align: center;">
				<a href="%s" class="button">Open Worksheet</a>
			</p>
			<p>Or copy and paste this link into your browser:</p>
			<p style="word-break: break-all; font-size: 12px; color: #666;">%s</p>
		</div>
		<div class="footer">
			<p>This is an automated email from English Arcade. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, fromName, title, shareLink, shareLink)

	textBody := fmt.Sprintf(`%s has shared the worksheet "%s" with you on English Arcade.

Open it here:
%s

---
This is an automated email from English Arcade. Please do not reply.
`, fromName, title, shareLink)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	if s.debug {
		log.Printf("[DEBUG] Sending email: from=%s, to=%s, subject=%s", fromAddress, toEmail, subject)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if s.debug && result.MessageId != nil {
		log.Printf("[DEBUG] SES message ID: %s", *result.MessageId)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
