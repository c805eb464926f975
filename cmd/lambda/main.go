package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/mxngjxa/micro1-zara-mock/internal/container"
	"github.com/mxngjxa/micro1-zara-mock/internal/router"
)

var chiLambda *chiadapter.ChiLambdaV2

func init() {
	ctx := context.Background()
	c, err := container.New(ctx)
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}

	handler := router.New(router.RouterConfig{
		AuthService:      c.AuthService,
		UserHandler:      c.UserContainer.Handler,
		InterviewHandler: c.InterviewContainer.Handler,
		QuestionHandler:  c.QuestionContainer.Handler,
		AnswerHandler:    c.AnswerContainer.Handler,
		AllowedOrigins:   c.Config.AllowedOrigins,
	})

	chiLambda = chiadapter.NewV2(handler)
}

func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return chiLambda.ProxyWithContextV2(ctx, req)
}

func main() {
	lambda.Start(handler)
}
