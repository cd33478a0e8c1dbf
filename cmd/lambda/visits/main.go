package main

import (
	"context"
	"encoding/json"
	"net/http"

	"visit-counter-api/internal/handlers"
	"visit-counter-api/internal/models"
	"visit-counter-api/pkg/lambda"
	"visit-counter-api/pkg/server"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

var manager = server.NewConnectionManager(nil)

func handler(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
	container, err := manager.GetContainer(ctx)
	if err != nil {
		logger := logrus.StandardLogger()
		logger.WithError(err).Error("Failed to initialize container")
		resp := handlers.JSONResponse(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()}, logger)
		return resp.ToProxyResponse(), nil
	}

	req, err := lambda.ParseEvent(event)
	if err != nil {
		// Undecodable events carry no method and are served as reads.
		container.Logger.WithError(err).Warn("Failed to decode event")
	}
	if id := lambda.InvocationID(ctx); id != "" {
		req.RequestID = id
	}

	resp := container.VisitHandler.Handle(ctx, req)
	return resp.ToProxyResponse(), nil
}

func main() {
	// Build the store client before the first invocation.
	if _, err := manager.GetContainer(context.Background()); err != nil {
		panic("Failed to initialize container: " + err.Error())
	}

	awslambda.Start(handler)
}
