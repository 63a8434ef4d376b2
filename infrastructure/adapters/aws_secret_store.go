package adapters

import (
	"context"
	"errors"

	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

// awsSecretStore looks credentials up in Secrets Manager under prefix+name.
type awsSecretStore struct {
	client secretsmanageriface.SecretsManagerAPI
	prefix string
}

func NewAWSSecretStore(client secretsmanageriface.SecretsManagerAPI, prefix string) outbound.SecretStorePort {
	return &awsSecretStore{
		client: client,
		prefix: prefix,
	}
}

func (a *awsSecretStore) Name() string {
	return "aws"
}

func (a *awsSecretStore) Lookup(ctx context.Context, name string) (string, bool, error) {
	out, err := a.client.GetSecretValueWithContext(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(a.prefix + name),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == secretsmanager.ErrCodeResourceNotFoundException {
			return "", false, nil
		}
		return "", false, err
	}
	value := aws.StringValue(out.SecretString)
	return value, value != "", nil
}
