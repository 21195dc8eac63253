// Package api provides the HTTP API layer for the annotation service.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Key Features
//
// 1. Automatic OpenAPI Generation
//
// The API automatically generates OpenAPI 3.0 documentation:
// - JSON spec available at /openapi.json
// - Interactive Swagger UI at /docs
//
// 2. Request/Response Validation
//
// Huma provides automatic validation based on struct tags:
//
//	type CreateHighlightRequest struct {
//	    StartOffset int    `json:"startOffset" minimum:"0"`
//	    EndOffset   int    `json:"endOffset" minimum:"1"`
//	    Color       string `json:"color" enum:"yellow,red,green,blue,purple"`
//	    Note        string `json:"note,omitempty" maxLength:"2048"`
//	}
//
// 3. Middleware Support
//
// The API includes middleware for:
// - Request logging with unique request IDs
// - Rate limiting per IP address
// - CORS handling (when configured)
// - Authentication (future)
//
// # Usage Example
//
//	// Create API with middleware
//	cfg := api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  100,
//	    RateWindow: time.Minute,
//	}
//	humaAPI, router := api.NewAPIWithMiddleware(cfg)
//
//	// Register handlers
//	highlightHandler := handlers.NewHighlightHandler(annotationService)
//	highlightHandler.RegisterRoutes(humaAPI)
//
//	// Start server
//	http.ListenAndServe(":8080", router)
//
// # Error Handling
//
// The API uses a consistent error format based on RFC 7807:
//
//	{
//	    "status": 422,
//	    "title": "Unprocessable Entity",
//	    "detail": "offset range [10,99) out of range for text of length 13",
//	    "instance": "/bookmarks/abc/highlights"
//	}
//
// Domain errors are automatically mapped to appropriate HTTP status codes.
//
package api
