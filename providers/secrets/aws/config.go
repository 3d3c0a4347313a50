package aws

import "github.com/aws/aws-sdk-go-v2/aws"

// Config holds settings for a SaltStore.
type Config struct {
	// Region is the AWS region (e.g., "us-east-1"). If empty, the SDK's
	// default resolution applies (AWS_REGION, shared config file).
	Region string

	// AWSConfig is an optional pre-configured AWS config. If provided,
	// Region is ignored.
	AWSConfig *aws.Config
}
