package leads

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// SQSAPI is the subset of the SQS client used by SQSSink.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSSink publishes leads to a queue for asynchronous CRM ingestion.
type SQSSink struct {
	client   SQSAPI
	queueURL string
}

func NewSQSSink(client SQSAPI, queueURL string) *SQSSink {
	return &SQSSink{client: client, queueURL: queueURL}
}

func (s *SQSSink) Name() string { return "sqs" }

func (s *SQSSink) Deliver(ctx context.Context, lead Lead) (bool, error) {
	if s == nil || s.client == nil || s.queueURL == "" {
		return false, nil
	}

	body, err := json.Marshal(lead)
	if err != nil {
		return false, fmt.Errorf("leads: marshal lead: %w", err)
	}

	_, err = s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"lead_id": {DataType: aws.String("String"), StringValue: aws.String(lead.ID)},
		},
	})
	if err != nil {
		return false, fmt.Errorf("leads: sqs send: %w", err)
	}
	return true, nil
}
