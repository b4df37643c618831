package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"
)

type snsAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient publishes dashboard alerts to a topic.
type SNSClient struct {
	svc      snsAPI
	topicArn string
}

func NewSNSClient(ctx context.Context, region, topicArn string) (*SNSClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &SNSClient{
		svc:      sns.NewFromConfig(cfg),
		topicArn: topicArn,
	}, nil
}

func (c *SNSClient) SendAlert(ctx context.Context, subject, message string) error {
	input := &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	}

	result, err := c.svc.Publish(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}

	log.Info().Str("message_id", aws.ToString(result.MessageId)).Str("subject", subject).Msg("alert sent")
	return nil
}

// SendRegressionAlert reports an AI period that consumed more than the manual one.
func (c *SNSClient) SendRegressionAlert(ctx context.Context, manualKWh, aiKWh float64, percent int, at time.Time) error {
	subject := "Building Energy Alert: AI period consumed more than manual baseline"
	message := fmt.Sprintf(
		"AI Efficiency Regression\n\n"+
			"Manual period: %.1f kWh\n"+
			"AI period: %.1f kWh\n"+
			"Change: %d%%\n"+
			"Time: %s\n\n"+
			"Please review recent AI control actions.",
		manualKWh,
		aiKWh,
		percent,
		at.Format(time.RFC3339),
	)

	return c.SendAlert(ctx, subject, message)
}
