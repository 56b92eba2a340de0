package database

import (
	"context"
	"strings"

	appconfig "lavacar_booking/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"
)

// NewDynamoDBClient builds the client shared by the booking repository and
// the service catalog. DynamoDBEndpoint points the client at DynamoDB Local.
func NewDynamoDBClient(ctx context.Context, cfg appconfig.AWS) (*dynamodb.Client, error) {
	awsCfg, err := NewAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimSpace(cfg.DynamoDBEndpoint)
	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	logrus.WithFields(logrus.Fields{"region": cfg.Region, "endpoint": endpoint}).Info("[database] dynamodb client initialized")
	return client, nil
}

func NewAWSConfig(ctx context.Context, cfg appconfig.AWS) (aws.Config, error) {
	// DynamoDB Local ignores credentials, but the SDK still requires them.
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")

	return config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(creds),
	)
}
