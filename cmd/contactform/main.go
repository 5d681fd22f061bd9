//go:build js && wasm

// Command contactform runs the contact form controller in the browser.
//
//	GOOS=js GOARCH=wasm go build -ldflags "-X main.scriptURL=https://..." -o contactform.wasm ./cmd/contactform
package main

import (
	"context"
	"errors"
	"log/slog"
	"syscall/js"

	"github.com/pskill9/PreclinicalResearch/form"
	"github.com/pskill9/PreclinicalResearch/pkg/dom"
	"github.com/pskill9/PreclinicalResearch/pkg/logger"
	"github.com/pskill9/PreclinicalResearch/service"
)

// scriptURL is the webhook endpoint, set at build time.
var scriptURL = "YOUR_GOOGLE_APPS_SCRIPT_URL"

func main() {
	logger.Init(&logger.Config{Level: "info", Format: "text"})

	formEl, ok := dom.ByID("contactForm")
	if !ok {
		slog.Warn("contact form not found on page")
		return
	}
	successEl, okSuccess := dom.ByID("successMessage")
	errorEl, okError := dom.ByID("errorMessage")
	if !okSuccess || !okError {
		slog.Warn("contact form message elements missing")
		return
	}

	contact := dom.NewForm(formEl)
	ctrl := form.NewController(form.Elements{
		Form:    contact,
		Submit:  contact.SubmitButton(),
		Success: dom.NewBanner(successEl),
		Error:   dom.NewBanner(errorEl),
	}, service.NewBrowserWebhookClient(scriptURL), form.Options{})

	formEl.On("submit", func(ev js.Value) {
		ev.Call("preventDefault")
		// net/http blocks on a fetch promise, which must not happen inside
		// a js callback.
		go func() {
			err := ctrl.Submit(context.Background())
			if err != nil && !errors.Is(err, form.ErrInvalid) {
				slog.Error("contact form submit failed", "error", err)
			}
		}()
	})

	formEl.On("input", func(ev js.Value) {
		if f := contact.FieldFor(ev.Get("target")); f != nil {
			ctrl.ClearFieldError(f)
		}
	})

	formEl.On("keydown", func(ev js.Value) {
		f := contact.FieldFor(ev.Get("target"))
		if f != nil && form.SuppressEnter(f, ev.Get("key").String()) {
			ev.Call("preventDefault")
		}
	})

	slog.Info("contact form ready", "fields", len(contact.Fields()))
	select {}
}
