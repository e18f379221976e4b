package llm

import "context"

type purposeKey struct{}

// PurposeTranslate labels quick-translate calls in the event log.
const PurposeTranslate = "translate"

// WithPurpose tags ctx so recorded events say why a call was made.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
