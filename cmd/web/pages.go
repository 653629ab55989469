package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/creotizant/HCM-Landing/internal/handlers"
	mw "github.com/creotizant/HCM-Landing/internal/middleware"
	"github.com/creotizant/HCM-Landing/internal/nav"
	"github.com/creotizant/HCM-Landing/internal/observability"
	"github.com/creotizant/HCM-Landing/internal/pricing"
)

// pageHandler navigates the session shell to the requested id and renders
// the mounted view: a fragment for htmx swaps, the full layout otherwise.
func (a *app) pageHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)
	sh, ok := mw.ShellFromContext(ctx)
	if !ok {
		mw.WriteError(w, r, http.StatusInternalServerError, "session unavailable")
		return
	}
	id := chi.URLParam(r, "pageID")
	if id == "" {
		id = string(nav.DefaultPage)
	}
	if !isNavigation(r, id) {
		mw.WriteError(w, r, http.StatusNotFound, "not found")
		return
	}

	ticket := sh.Navigate(id, mw.HeaderScroller{W: w})
	loadCtx, cancel := context.WithTimeout(ctx, a.cfg.Nav.ViewLoadTimeout)
	defer cancel()
	mounted, err := sh.Await(loadCtx, ticket)
	if err != nil {
		a.navigationFailed(w, r, sh, ticket, err)
		return
	}

	vm := a.builder.Build(a.pageRequest(r, sh, mounted.PageID, mounted.Selection, mounted.Generation))
	logger.Debug("view mounted",
		zap.String("page_id", mounted.PageID),
		zap.String("view", mounted.Selection.View),
		zap.Uint64("generation", mounted.Generation),
	)
	a.render(w, r, mounted.View, vm, http.StatusOK)
}

// isNavigation rejects requests the browser makes on its own, such as
// /favicon.ico or an image fetch, so they never move the session's shell.
// Page and product ids never contain a dot.
func isNavigation(r *http.Request, id string) bool {
	if strings.ContainsRune(id, '.') {
		return false
	}
	switch r.Header.Get("Sec-Fetch-Dest") {
	case "", "document", "empty", "iframe":
		return true
	default:
		return false
	}
}

func (a *app) pageRequest(r *http.Request, sh *nav.Shell, pageID string, sel nav.Selection, gen uint64) handlers.Request {
	q := r.URL.Query()
	return handlers.Request{
		PageID:       pageID,
		Selection:    sel,
		Generation:   gen,
		Overlays:     sh.Overlays(),
		CSRFToken:    mw.GetSession(r).CSRFToken,
		Billing:      pricing.ParseBilling(q.Get("billing")),
		ResourceType: q.Get("type"),
		Search:       q.Get("q"),
	}
}

// renderSuperseded answers a full page load whose navigation was overtaken,
// usually by another tab of the same session. The browser has no previous
// view to keep, so it gets the page it asked for without mounting it.
func (a *app) renderSuperseded(w http.ResponseWriter, r *http.Request, sh *nav.Shell, t nav.Ticket) {
	loadCtx, cancel := context.WithTimeout(r.Context(), a.cfg.Nav.ViewLoadTimeout)
	defer cancel()
	view, err := a.views.Load(loadCtx, t.Selection.View)
	if err != nil {
		observability.FromContext(r.Context()).Error("superseded view unavailable", zap.String("view", t.Selection.View), zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "page unavailable")
		return
	}
	vm := a.builder.Build(a.pageRequest(r, sh, t.PageID, t.Selection, t.Generation))
	a.render(w, r, view, vm, http.StatusOK)
}

// navigationFailed answers a navigation whose view never mounted. The
// previously mounted view stays on screen: htmx requests get a no-swap
// response. Full page loads get an error, or the requested page when a
// newer navigation overtook them.
func (a *app) navigationFailed(w http.ResponseWriter, r *http.Request, sh *nav.Shell, t nav.Ticket, err error) {
	logger := observability.FromContext(r.Context()).With(
		zap.String("page_id", t.PageID),
		zap.String("view", t.Selection.View),
		zap.Uint64("generation", t.Generation),
	)
	htmx := mw.IsHTMX(r.Context())

	switch {
	case errors.Is(err, nav.ErrSuperseded):
		logger.Debug("navigation superseded")
		if htmx {
			mw.NoSwap(w)
			return
		}
		a.renderSuperseded(w, r, sh, t)
	case errors.Is(r.Context().Err(), context.Canceled):
		logger.Debug("client went away during navigation")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("view load timed out", zap.Duration("timeout", a.cfg.Nav.ViewLoadTimeout))
		if htmx {
			mw.NoSwap(w)
			return
		}
		mw.WriteError(w, r, http.StatusServiceUnavailable, "page is taking too long to load, please retry")
	default:
		logger.Error("view load failed", zap.Error(err))
		if htmx {
			mw.NoSwap(w)
			return
		}
		mw.WriteError(w, r, http.StatusInternalServerError, "page unavailable")
	}
}

// productDetailHandler renders the product detail view for an explicit id
// without touching navigation state. Unknown ids get the not found state.
func (a *app) productDetailHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	var overlays nav.Overlays
	if sh, ok := mw.ShellFromContext(ctx); ok {
		overlays = sh.Overlays()
	}
	vm := a.builder.BuildProductDetail(id, handlers.Request{
		Overlays:  overlays,
		CSRFToken: mw.GetSession(r).CSRFToken,
	})

	loadCtx, cancel := context.WithTimeout(ctx, a.cfg.Nav.ViewLoadTimeout)
	defer cancel()
	view, err := a.views.Load(loadCtx, nav.ViewProductDetail)
	if err != nil {
		observability.FromContext(ctx).Error("product detail view unavailable", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "page unavailable")
		return
	}
	status := http.StatusOK
	if vm.Product.NotFound {
		status = http.StatusNotFound
	}
	a.render(w, r, view, vm, status)
}

// pricingPlansFrag swaps the plan cards when the billing toggle changes.
func (a *app) pricingPlansFrag(w http.ResponseWriter, r *http.Request) {
	billing := pricing.ParseBilling(r.URL.Query().Get("billing"))
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, "/pricing?billing="+url.QueryEscape(string(billing)), http.StatusSeeOther)
		return
	}
	pv := pricing.Build(billing)
	a.renderPartial(w, r, "pricing-plans", &pv)
}

// resourceItemsFrag swaps the resource list for a filter or search change.
func (a *app) resourceItemsFrag(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, "/resources?"+q.Encode(), http.StatusSeeOther)
		return
	}
	a.renderPartial(w, r, "resource-list", a.builder.Resources(q.Get("type"), q.Get("q")))
}

// render executes a view into a buffer so template errors never produce a
// half written page.
func (a *app) render(w http.ResponseWriter, r *http.Request, view nav.View, vm handlers.PageData, status int) {
	fragment := mw.IsHTMX(r.Context()) && r.Header.Get("HX-History-Restore-Request") != "true"
	var buf bytes.Buffer
	if err := view.Render(&buf, vm, fragment); err != nil {
		observability.FromContext(r.Context()).Error("render failed", zap.String("view", view.Name()), zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "page unavailable")
		return
	}
	writeHTML(w, status, &buf)
}

func (a *app) renderPartial(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := a.views.RenderPartial(&buf, name, data); err != nil {
		observability.FromContext(r.Context()).Error("render partial failed", zap.String("partial", name), zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "fragment unavailable")
		return
	}
	writeHTML(w, http.StatusOK, &buf)
}

func writeHTML(w http.ResponseWriter, status int, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
