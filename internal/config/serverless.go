package config

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda     bool
	FunctionName string
	Region       string
	Stage        string
}

var (
	serverlessConfig *ServerlessConfig
	serverlessOnce   sync.Once
)

// GetServerlessConfig returns the serverless configuration
func GetServerlessConfig() *ServerlessConfig {
	serverlessOnce.Do(func() {
		serverlessConfig = &ServerlessConfig{
			IsLambda:     isRunningInLambda(),
			FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
			Region:       os.Getenv("AWS_REGION"),
			Stage:        GetEnv("STAGE", "dev"),
		}
	})
	return serverlessConfig
}

// isRunningInLambda detects if the application is running in AWS Lambda
func isRunningInLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// IsServerlessMode returns true if running in serverless mode
func IsServerlessMode() bool {
	return GetServerlessConfig().IsLambda
}

// LogFields describes the deployment for startup logs
func (sc *ServerlessConfig) LogFields() logrus.Fields {
	if !sc.IsLambda {
		return logrus.Fields{"deployment_mode": "server"}
	}
	return logrus.Fields{
		"deployment_mode": "serverless",
		"function_name":   sc.FunctionName,
		"stage":           sc.Stage,
		"region":          sc.Region,
	}
}

// AdaptConfigForServerless modifies configuration for serverless deployment.
// Stores that live on the instance (sqlite file, process memory) do not
// survive across Lambda instances, so they are replaced by DynamoDB.
func AdaptConfigForServerless(sc *ServerlessConfig, config *Config) *Config {
	if sc == nil || !sc.IsLambda {
		return config
	}

	switch config.Store.Type {
	case "sqlite", "memory":
		config.Store.Type = "dynamodb"
	}

	if config.Store.DynamoDB.Region == "" && sc.Region != "" {
		config.Store.DynamoDB.Region = sc.Region
	}

	config.Store.enableSelected()
	return config
}

// GetOptimizedConfig returns configuration optimized for the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}

	config = AdaptConfigForServerless(GetServerlessConfig(), config)

	// Adaptation may switch the store type, so check again.
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
