package middleware

import (
	"net/http"
)

// Response headers understood by htmx.
const (
	HeaderTriggerAfterSwap = "HX-Trigger-After-Swap"
	HeaderReswap           = "HX-Reswap"
	HeaderPushURL          = "HX-Push-Url"
	HeaderRetarget         = "HX-Retarget"
)

// ScrollResetEvent is fired on the client after a navigation swap; the page
// script scrolls the window to the origin when it sees it.
const ScrollResetEvent = "nav-scroll-reset"

// HTMX marks requests coming from htmx so handlers/middlewares can adapt responses
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true"
		if is {
			w.Header().Add("Vary", "HX-Request")
		}
		ctx := WithHTMX(r.Context(), is)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// HeaderScroller asks the client to reset its scroll position after the
// swap by emitting the scroll reset event. It implements nav.Scroller.
type HeaderScroller struct {
	W http.ResponseWriter
}

// ScrollToOrigin sets the after-swap trigger header.
func (s HeaderScroller) ScrollToOrigin() {
	s.W.Header().Set(HeaderTriggerAfterSwap, ScrollResetEvent)
}

// NoSwap tells htmx to keep the current content.
func NoSwap(w http.ResponseWriter) {
	w.Header().Set(HeaderReswap, "none")
	w.WriteHeader(http.StatusNoContent)
}
