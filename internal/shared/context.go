package shared

import "context"

type identityContextKey struct{}

type cookieJarContextKey struct{}

// ContextWithIdentity stores the resolved identity in context.
func ContextWithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext extracts the identity from context, nil when absent.
func IdentityFromContext(ctx context.Context) *Identity {
	identity, _ := ctx.Value(identityContextKey{}).(*Identity)
	return identity
}

// ContextWithCookieJar stores the request cookie values for ambient access.
func ContextWithCookieJar(ctx context.Context, jar map[string]string) context.Context {
	return context.WithValue(ctx, cookieJarContextKey{}, jar)
}

// CookieJarFromContext extracts the ambient cookie jar, nil when absent.
func CookieJarFromContext(ctx context.Context) map[string]string {
	jar, _ := ctx.Value(cookieJarContextKey{}).(map[string]string)
	return jar
}
