package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smartlife/recommender/internal/http/response"
)

// EnvelopeTransformer wraps every huma response body in the shared
// {v, success, data | error} envelope.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return response.WrapError(apiErr.Code, apiErr.Message, apiErr.Details), nil
	}
	if code, err := strconv.Atoi(status); err == nil && code >= 400 {
		if model, ok := v.(*huma.ErrorModel); ok {
			return response.WrapError(statusToCode(code), model.Detail, model.Errors), nil
		}
	}
	if _, ok := v.(response.Envelope); ok {
		return v, nil
	}
	return response.Wrap(v), nil
}
