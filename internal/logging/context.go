package logging

import "context"

const (
	ModuleKey = "module"
	UserKey   = "user"
)

type userCtxKey struct{}

// ContextWithUser tags ctx with the authenticated user id. Both backends add
// it to every entry logged with that context.
func ContextWithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userCtxKey{}, userID)
}

func UserFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(userCtxKey{}).(string)
	return id, ok && id != ""
}

// Module returns l scoped to a component. A nil l discards everything.
func Module(l Logger, name string) Logger {
	if l == nil {
		l = Nop{}
	}
	return l.With(ModuleKey, name)
}

// contextArgs appends the user carried by ctx unless the caller already
// logs one.
func contextArgs(ctx context.Context, args []any) []any {
	id, ok := UserFromContext(ctx)
	if !ok {
		return args
	}
	for i := 0; i+1 < len(args); i += 2 {
		if k, _ := args[i].(string); k == UserKey {
			return args
		}
	}
	return append(args[:len(args):len(args)], UserKey, id)
}
