package pkgrouter

import (
	"context"
	"time"

	"github.com/julienschmidt/httprouter"
)

// GetParam reads a path parameter from the request context (as stored by httprouter).
func GetParam(ctx context.Context, key string) string {
	return httprouter.ParamsFromContext(ctx).ByName(key)
}

// GetParamTime parses the path parameter key with layout.
func GetParamTime(ctx context.Context, key, layout string) (time.Time, error) {
	return time.Parse(layout, GetParam(ctx, key))
}
