package aws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"go.uber.org/zap"

	"github.com/opus-finance/opus-api/libs/go/logger"
)

// ErrSecretNotFound is returned when neither the ARN nor the fallback yields a value.
var ErrSecretNotFound = errors.New("secret not found")

// secretsAPI is the subset of the Secrets Manager client used here.
type secretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerClient wraps the AWS Secrets Manager client.
type SecretsManagerClient struct {
	svc secretsAPI
}

// NewSecretsManagerClient creates and initializes a new Secrets Manager client.
// It uses the default AWS configuration chain (environment variables, shared config, IAM role).
func NewSecretsManagerClient(ctx context.Context) (*SecretsManagerClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return &SecretsManagerClient{svc: secretsmanager.NewFromConfig(cfg)}, nil
}

// ResolveSecret returns the secret stored at secretArn, or fallback when the
// ARN is empty or the fetch fails. Secrets stored as a single-key JSON
// object are unwrapped to that key's value.
func (c *SecretsManagerClient) ResolveSecret(ctx context.Context, secretArn, fallback string) (string, error) {
	if secretArn != "" && c != nil && c.svc != nil {
		value, err := c.fetch(ctx, secretArn)
		if err == nil {
			return value, nil
		}
		logger.Log.Warn("Failed to retrieve secret from Secrets Manager, using fallback",
			zap.String("secretArn", secretArn),
			zap.Bool("hasFallback", fallback != ""),
			zap.Error(err),
		)
	}

	if fallback != "" {
		return fallback, nil
	}
	return "", ErrSecretNotFound
}

func (c *SecretsManagerClient) fetch(ctx context.Context, secretArn string) (string, error) {
	result, err := c.svc.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretArn),
	})
	if err != nil {
		return "", err
	}
	if result.SecretString == nil || *result.SecretString == "" {
		return "", errors.New("secret has no string value")
	}
	raw := *result.SecretString

	var secretJSON map[string]string
	if json.Unmarshal([]byte(raw), &secretJSON) == nil && len(secretJSON) == 1 {
		for key, value := range secretJSON {
			logger.Log.Debug("Fetched secret from Secrets Manager (single-key JSON)",
				zap.String("secretArn", secretArn),
				zap.String("jsonKey", key))
			return value, nil
		}
	}

	logger.Log.Debug("Fetched secret from Secrets Manager", zap.String("secretArn", secretArn))
	return raw, nil
}
