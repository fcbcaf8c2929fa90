package requestdata

import "context"

type requestDataKey struct{}

type RequestData struct {
	UserID string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

// Gate resolves the current user from the request context populated by the
// auth middleware.
type Gate struct{}

func (Gate) ResolveCurrentUser(ctx context.Context) (string, bool) {
	rd := GetRequestData(ctx)
	if rd == nil || rd.UserID == "" {
		return "", false
	}
	return rd.UserID, true
}
