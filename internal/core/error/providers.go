package errx

import (
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// WrapGeocode maps Nominatim errors to the unified AppError type.
// These belong to the transport class: the analyzer absorbs them and
// degrades the report instead of failing the call.
func WrapGeocode(err error) *AppError {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, GeocodeErrorMessage)
}

// WrapOverpass maps Overpass errors to the unified AppError type. A
// failure here is scoped to one category of the analysis.
func WrapOverpass(err error) *AppError {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, OverpassErrorMessage)
}

// WrapCache maps query cache errors to the unified AppError type with
// appropriate status codes. A cache miss is not an error for callers.
func WrapCache(err error) *AppError {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return New(err, http.StatusNotFound, CacheErrorMessage)
	}
	return New(err, http.StatusBadGateway, CacheErrorMessage)
}
