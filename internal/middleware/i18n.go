package middleware

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

type localeContextKey struct{}

// LocaleKey carries the negotiated locale in the request context.
var LocaleKey = localeContextKey{}

// supported lists the locales the AI prompts can be asked to answer in.
var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.Spanish,
	language.French,
	language.German,
	language.Portuguese,
	language.Hindi,
	language.Indonesian,
}

var matcher = language.NewMatcher(supported)

// I18N negotiates the response locale from the X-Locale header or the
// standard Accept-Language header and stores it in the request context.
func I18N(defaultLocale string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := detectLocale(r, defaultLocale)
			ctx := context.WithValue(r.Context(), LocaleKey, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback string) string {
	if fallback == "" {
		fallback = "en"
	}
	pref := r.Header.Get("X-Locale")
	accept := r.Header.Get("Accept-Language")
	if pref == "" && accept == "" {
		return fallback
	}
	// MatchStrings falls back to the first supported tag when nothing
	// matches, so an unrecognized preference resolves to English.
	tag, _ := language.MatchStrings(matcher, pref, accept)
	base, _ := tag.Base()
	return base.String()
}

// LocaleFromContext returns the negotiated locale, defaulting to English.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok && v != "" {
		return v
	}
	return "en"
}
