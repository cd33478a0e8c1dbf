package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

// methodProbe locates the HTTP method in either API Gateway payload shape
type methodProbe struct {
	HTTPMethod     string `json:"httpMethod"`
	RequestContext struct {
		HTTP struct {
			Method string `json:"method"`
		} `json:"http"`
	} `json:"requestContext"`
}

func (p methodProbe) method() string {
	if p.HTTPMethod != "" {
		return p.HTTPMethod
	}
	return p.RequestContext.HTTP.Method
}

// ParseEvent decodes a REST API (v1) or HTTP API / Function URL (v2) event.
// The v1 httpMethod wins; requestContext.http.method is the fallback. An
// event carrying neither yields a request with an empty method. A type
// mismatch in another field still keeps whatever method was decoded.
func ParseEvent(raw json.RawMessage) (*Request, error) {
	var probe methodProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return &Request{Method: probe.method()}, fmt.Errorf("failed to decode event: %w", err)
	}

	if probe.HTTPMethod == "" && probe.RequestContext.HTTP.Method != "" {
		var event events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(raw, &event); err != nil {
			return &Request{Method: probe.RequestContext.HTTP.Method}, fmt.Errorf("failed to decode v2 event: %w", err)
		}
		return fromV2(event)
	}

	var event events.APIGatewayProxyRequest
	if err := json.Unmarshal(raw, &event); err != nil {
		return &Request{Method: probe.HTTPMethod}, fmt.Errorf("failed to decode v1 event: %w", err)
	}
	return fromV1(event)
}

func fromV1(event events.APIGatewayProxyRequest) (*Request, error) {
	body, err := decodeBody(event.Body, event.IsBase64Encoded)
	if err != nil {
		return &Request{Method: event.HTTPMethod}, err
	}

	return &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        body,
		RequestID:   event.RequestContext.RequestID,
	}, nil
}

func fromV2(event events.APIGatewayV2HTTPRequest) (*Request, error) {
	body, err := decodeBody(event.Body, event.IsBase64Encoded)
	if err != nil {
		return &Request{Method: event.RequestContext.HTTP.Method}, err
	}

	path := event.RawPath
	if path == "" {
		path = event.RequestContext.HTTP.Path
	}

	return &Request{
		Method:      event.RequestContext.HTTP.Method,
		Path:        path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        body,
		RequestID:   event.RequestContext.RequestID,
	}, nil
}

func decodeBody(body string, isBase64 bool) ([]byte, error) {
	if !isBase64 {
		return []byte(body), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 body: %w", err)
	}
	return decoded, nil
}

// ToProxyResponse converts the response for API Gateway. The proxy
// response shape is accepted by both REST and HTTP API integrations.
func (r *Response) ToProxyResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Body:       string(r.Body),
	}
}

// InvocationID returns the Lambda request ID carried by ctx, if any
func InvocationID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return lc.AwsRequestID
	}
	return ""
}
