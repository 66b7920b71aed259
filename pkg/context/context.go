package context

import "context"

type ContextKey string

var (
	RequestIDKey   = ContextKey("X-Request-Id")
	RouteKey       = ContextKey("X-Route")
	RemoteIPKey    = ContextKey("X-Remote-Ip")
	ActionKey      = ContextKey("X-Action")
	ActionTokenKey = ContextKey("X-Action-Token")
	PrincipalKey   = ContextKey("X-Principal")
)

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	value, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, RouteKey, route)
}

func GetRoute(ctx context.Context) string {
	value, ok := ctx.Value(RouteKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetRemoteIP(ctx context.Context, remoteIP string) context.Context {
	return context.WithValue(ctx, RemoteIPKey, remoteIP)
}

func GetRemoteIP(ctx context.Context) string {
	value, ok := ctx.Value(RemoteIPKey).(string)
	if !ok {
		return ""
	}
	return value
}

// SetAction records the type of the async action that issued the work carried by ctx.
func SetAction(ctx context.Context, actionType string) context.Context {
	return context.WithValue(ctx, ActionKey, actionType)
}

func GetAction(ctx context.Context) string {
	value, ok := ctx.Value(ActionKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetActionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ActionTokenKey, token)
}

func GetActionToken(ctx context.Context) string {
	value, ok := ctx.Value(ActionTokenKey).(string)
	if !ok {
		return ""
	}
	return value
}

// SetPrincipal stores the caller the fake API authenticated from the Authorization header.
func SetPrincipal(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, PrincipalKey, principal)
}

func GetPrincipal(ctx context.Context) string {
	value, ok := ctx.Value(PrincipalKey).(string)
	if !ok {
		return ""
	}
	return value
}
