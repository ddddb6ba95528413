// Package notify produces user notifications as best-effort side effects.
// Recording or delivering a notification never fails the operation that
// triggered it; failures are logged and dropped.
package notify

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"stackit/internal/config"
	"stackit/internal/models"
)

type smsSender struct {
	client *twilio.RestClient
	from   string
}

// Notifier records notifications for users and optionally delivers them
// out-of-band via SMS when Twilio is configured.
type Notifier struct {
	db  *gorm.DB
	sms *smsSender
}

func New(db *gorm.DB, cfg *config.Config) *Notifier {
	n := &Notifier{db: db}
	if cfg != nil && cfg.SMSEnabled() {
		n.sms = &smsSender{
			client: twilio.NewRestClientWithParams(twilio.ClientParams{
				Username: cfg.TwilioAccountSID,
				Password: cfg.TwilioAuthToken,
			}),
			from: cfg.TwilioFromNumber,
		}
		logrus.Info("sms notification delivery enabled")
	}
	return n
}

// AnswerCreated notifies the question author that their question received a
// new answer. Nothing is recorded when the answerer is the question's own
// author.
func (n *Notifier) AnswerCreated(ctx context.Context, answerID uint) {
	var answer models.Answer
	if err := n.db.WithContext(ctx).First(&answer, answerID).Error; err != nil {
		logrus.WithError(err).WithField("answer_id", answerID).
			Warn("notification skipped: answer lookup failed")
		return
	}

	var question models.Question
	if err := n.db.WithContext(ctx).First(&question, answer.QuestionID).Error; err != nil {
		logrus.WithError(err).WithField("question_id", answer.QuestionID).
			Warn("notification skipped: question lookup failed")
		return
	}

	if question.UserID == answer.UserID {
		return
	}

	questionID := question.ID
	newAnswerID := answer.ID
	notification := models.Notification{
		UserID:     question.UserID,
		Type:       models.NotificationTypeAnswer,
		Message:    fmt.Sprintf("Someone answered your question %q", question.Title),
		QuestionID: &questionID,
		AnswerID:   &newAnswerID,
	}
	if err := n.db.WithContext(ctx).Create(&notification).Error; err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id":   question.UserID,
			"answer_id": answer.ID,
		}).Warn("failed to record notification")
		return
	}

	n.deliverSMS(ctx, question.UserID, notification.Message)
}

func (n *Notifier) deliverSMS(ctx context.Context, userID uint, message string) {
	if n.sms == nil {
		return
	}

	var user models.User
	if err := n.db.WithContext(ctx).First(&user, userID).Error; err != nil || user.Phone == "" {
		return
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(user.Phone)
	params.SetFrom(n.sms.from)
	params.SetBody(message)

	if _, err := n.sms.client.Api.CreateMessage(params); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("sms delivery failed")
	}
}
