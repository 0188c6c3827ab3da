package messaging

import (
	"context"

	"stackfood_payments/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSAPI is the slice of the SNS client the publisher needs.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSEventPublisher fans outcome events out to a single SNS topic.
// The event type rides along as the message subject; consumers that
// demultiplex by kind read the eventType field inside the payload.

type SNSEventPublisher struct {
	sns      SNSAPI
	topicARN string
}

var _ interfaces.IEventPublisher = (*SNSEventPublisher)(nil)

func NewSNSEventPublisher(client SNSAPI, topicARN string) *SNSEventPublisher {
	return &SNSEventPublisher{sns: client, topicARN: topicARN}
}

func (p *SNSEventPublisher) Publish(ctx context.Context, eventType string, payload []byte) error {
	_, err := p.sns.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Subject:  aws.String(eventType),
		Message:  aws.String(string(payload)),
	})
	return err
}
