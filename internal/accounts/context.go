package accounts

import "context"

type userIDKey struct{}

// WithUserID 将已认证用户ID写入上下文
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext 读取上下文中的已认证用户ID
func UserIDFromContext(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(userIDKey{}).(uint)
	return userID, ok && userID != 0
}
