// Command lambda runs the notes API behind API Gateway's REST proxy integration.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/quicknotes/notes-api/internal/app"
	"github.com/quicknotes/notes-api/internal/config"
	"github.com/quicknotes/notes-api/pkg/logger"
)

type proxyHandler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// newHandler serves each proxy event through engine. Base64 bodies,
// multi-value headers and the caller's source IP are handled by the adapter.
func newHandler(engine *gin.Engine) proxyHandler {
	return ginadapter.New(engine).ProxyWithContext
}

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.SetFormat(cfg.Log.Format)

	// Clients are built once per container and reused across invocations.
	a, err := app.New(context.Background(), cfg, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatalf("failed to initialise backends: %v", err)
	}
	lambda.Start(newHandler(a.Engine))
}
