package audit

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"umabank.org/internal/ids"
	"umabank.org/internal/obs"
)

type ctxKey string

const sessionIDKey ctxKey = "audit_session_id"

// WithSessionID attaches the shell session identifier to the context so
// every audit event of one interactive session can be correlated.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// sessionIDFromContext extracts the audit session id from context if present.
func sessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(sessionIDKey).(string); ok {
		return v
	}
	return ""
}

// LogEvent writes an audit log entry with a sortable event id and the
// session context.
func LogEvent(ctx context.Context, event string, fields map[string]any) error {
	event = strings.TrimSpace(event)
	if event == "" {
		return errors.New("event name is required")
	}
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"type":  "audit",
		"event": event,
		"id":    ids.New(),
	}
	if sid := sessionIDFromContext(ctx); sid != "" {
		entry["session_id"] = sid
	}
	if len(fields) > 0 {
		copyFields := make(map[string]any, len(fields))
		for k, v := range fields {
			copyFields[k] = v
		}
		entry["fields"] = copyFields
	} else {
		entry["fields"] = map[string]any{}
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	obs.Logger().Println(string(data))
	return nil
}
