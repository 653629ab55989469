package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/creotizant/HCM-Landing/internal/handlers"
	"github.com/creotizant/HCM-Landing/internal/mailer"
	mw "github.com/creotizant/HCM-Landing/internal/middleware"
	"github.com/creotizant/HCM-Landing/internal/nav"
	"github.com/creotizant/HCM-Landing/internal/observability"
)

const (
	contactSentMsg   = "Thanks! Your message has been sent. Our team will get back to you within one working day."
	contactFailedMsg = "Sorry, we couldn't send your message. Please try again."
	demoSentMsg      = "Thanks! Your demo request has been received. We'll be in touch to schedule a time."
	demoFailedMsg    = "Sorry, we couldn't submit your request. Please try again."
)

// contactSubmitHandler forwards the contact form to the mailer and renders
// the form again with an inline status. Failed submissions keep the values
// so the visitor can resubmit.
func (a *app) contactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	form := mailer.ContactForm{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("message"),
	}
	data := &handlers.ContactData{Form: form}
	receipt, err := a.mail.SendContact(r.Context(), form)
	if err != nil {
		observability.FromContext(r.Context()).Warn("contact submission failed", zap.Error(err))
		data.Status = &handlers.FormStatus{Tone: "error", Message: contactFailedMsg}
	} else {
		observability.FromContext(r.Context()).Info("contact submission sent",
			zap.String("submission_id", receipt.ID),
			zap.Bool("simulated", receipt.Simulate),
		)
		data = &handlers.ContactData{Status: &handlers.FormStatus{Tone: "success", Message: contactSentMsg}}
	}
	a.renderForm(w, r, nav.PageContact, "contact-form", err, func(vm *handlers.PageData) { vm.Contact = data })
}

// demoSubmitHandler is the demo request counterpart of contactSubmitHandler.
func (a *app) demoSubmitHandler(w http.ResponseWriter, r *http.Request) {
	form := mailer.DemoForm{
		FirstName:   r.PostFormValue("first_name"),
		LastName:    r.PostFormValue("last_name"),
		Email:       r.PostFormValue("email"),
		CompanyName: r.PostFormValue("company_name"),
		CompanySize: r.PostFormValue("company_size"),
		Country:     r.PostFormValue("country"),
		Interest:    r.PostFormValue("interest"),
	}
	data := handlers.NewDemoData(form)
	receipt, err := a.mail.SendDemo(r.Context(), form)
	if err != nil {
		observability.FromContext(r.Context()).Warn("demo submission failed", zap.Error(err))
		data.Status = &handlers.FormStatus{Tone: "error", Message: demoFailedMsg}
	} else {
		observability.FromContext(r.Context()).Info("demo submission sent",
			zap.String("submission_id", receipt.ID),
			zap.Bool("simulated", receipt.Simulate),
		)
		data = handlers.NewDemoData(mailer.DemoForm{})
		data.Status = &handlers.FormStatus{Tone: "success", Message: demoSentMsg}
	}
	a.renderForm(w, r, nav.PageDemo, "demo-form", err, func(vm *handlers.PageData) { vm.Demo = data })
}

// renderForm swaps only the form for htmx posts. Plain posts get the whole
// page back, with 502 when delivery failed.
func (a *app) renderForm(w http.ResponseWriter, r *http.Request, page nav.Page, partial string, sendErr error, fill func(*handlers.PageData)) {
	var overlays nav.Overlays
	if sh, ok := mw.ShellFromContext(r.Context()); ok {
		overlays = sh.Overlays()
	}
	vm := a.builder.Build(handlers.Request{
		PageID:    string(page),
		Selection: nav.Selection{View: string(page)},
		Overlays:  overlays,
		CSRFToken: mw.GetSession(r).CSRFToken,
	})
	fill(&vm)

	if mw.IsHTMX(r.Context()) {
		a.renderPartial(w, r, partial, vm)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), a.cfg.Nav.ViewLoadTimeout)
	defer cancel()
	view, err := a.views.Load(ctx, string(page))
	if err != nil {
		observability.FromContext(r.Context()).Error("form view unavailable", zap.String("view", string(page)), zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "page unavailable")
		return
	}
	status := http.StatusOK
	if sendErr != nil {
		status = http.StatusBadGateway
	}
	a.render(w, r, view, vm, status)
}
