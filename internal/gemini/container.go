package gemini

import (
	"context"

	"github.com/sirupsen/logrus"
)

type Container struct {
	Service Service
}

func NewContainer(ctx context.Context, apiKey, model string, log logrus.FieldLogger) (*Container, error) {
	provider, err := NewGeminiProvider(ctx, apiKey, model)
	if err != nil {
		return nil, err
	}

	return &Container{
		Service: NewService(provider, log),
	}, nil
}
