// Package serverless serves the public catalog read path from API Gateway.
package serverless

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"julex/internal/catalog"
	"julex/internal/domain"
	applog "julex/internal/log"
	"julex/internal/services"
	"julex/internal/validate"
)

// CatalogHandler answers anonymous catalog requests. Lambda callers never
// carry a session, so every quote is the retail price.
type CatalogHandler struct {
	Catalog *services.CatalogService
	MaxAge  int // seconds for Cache-Control
}

func headers(maxAge int) map[string]string {
	h := map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET",
		"Access-Control-Allow-Headers": "Content-Type",
	}
	if maxAge > 0 {
		h["Cache-Control"] = "public, max-age=" + strconv.Itoa(maxAge) + ", must-revalidate"
	}
	return h
}

func (h *CatalogHandler) reply(status int, v any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(v)
	if err != nil {
		applog.L().Error("lambda.marshal.fail", zap.Error(err))
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    headers(0),
			Body:       `{"error":"failed to format response"}`,
		}
	}
	maxAge := 0
	if status == http.StatusOK {
		maxAge = h.MaxAge
	}
	return events.APIGatewayProxyResponse{StatusCode: status, Headers: headers(maxAge), Body: string(body)}
}

func (h *CatalogHandler) failure(req events.APIGatewayProxyRequest, err error) events.APIGatewayProxyResponse {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return h.reply(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCriteria):
		return h.reply(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	applog.L().Error("lambda.catalog.fail", zap.String("path", req.Path), zap.Error(err))
	return h.reply(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
}

// Handle serves GET /products (listing) and GET /products/{id} (detail).
func (h *CatalogHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if req.HTTPMethod != "" && req.HTTPMethod != http.MethodGet {
		return h.reply(http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"}), nil
	}
	if raw, ok := req.PathParameters["id"]; ok {
		id, ok := validate.ID(raw)
		if !ok {
			return h.reply(http.StatusNotFound, map[string]string{"error": "product not found"}), nil
		}
		item, err := h.Catalog.GetProduct(ctx, id, domain.Anonymous())
		if err != nil {
			return h.failure(req, err), nil
		}
		return h.reply(http.StatusOK, item), nil
	}

	q := req.QueryStringParameters
	c := catalog.ParseQuery(func(k string) string { return q[k] })
	c.Search = validate.Q(c.Search)
	res, err := h.Catalog.ListProducts(ctx, c)
	if err != nil {
		return h.failure(req, err), nil
	}
	applog.L().Debug("lambda.catalog.list", zap.Int("total", res.Pagination.Total))
	return h.reply(http.StatusOK, res), nil
}
