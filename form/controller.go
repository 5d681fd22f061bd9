package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pskill9/PreclinicalResearch/model"
)

const (
	// DefaultBannerDuration is how long a banner stays visible.
	DefaultBannerDuration = 5000 * time.Millisecond
	// DefaultBusyLabel replaces the submit label while a request is in flight.
	DefaultBusyLabel = "Sending..."
)

// ErrInvalid is returned by Submit when validation fails.
var ErrInvalid = errors.New("form has invalid fields")

// State is the phase of a submission attempt.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

// Options tunes a Controller. Zero values select the defaults.
type Options struct {
	BusyLabel      string
	BannerDuration time.Duration
	Scheduler      Scheduler
	Now            func() time.Time
	Logger         *slog.Logger
}

// Controller validates and submits the contact form.
type Controller struct {
	el        Elements
	submitter Submitter

	busyLabel      string
	bannerDuration time.Duration
	scheduler      Scheduler
	now            func() time.Time
	log            *slog.Logger

	mu      sync.Mutex
	state   State
	message model.MessageState
}

func NewController(el Elements, submitter Submitter, opts Options) *Controller {
	c := &Controller{
		el:             el,
		submitter:      submitter,
		busyLabel:      opts.BusyLabel,
		bannerDuration: opts.BannerDuration,
		scheduler:      opts.Scheduler,
		now:            opts.Now,
		log:            opts.Logger,
	}
	if c.busyLabel == "" {
		c.busyLabel = DefaultBusyLabel
	}
	if c.bannerDuration <= 0 {
		c.bannerDuration = DefaultBannerDuration
	}
	if c.scheduler == nil {
		c.scheduler = TimeScheduler{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// State returns the current submission phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Message returns which banner is currently visible.
func (c *Controller) Message() model.MessageState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Validate checks every required field, toggles their error indicators and,
// on failure, focuses the first invalid field and shows the error banner.
func (c *Controller) Validate() bool {
	var first Field
	for _, f := range c.el.Form.Fields() {
		if !f.Required() {
			continue
		}
		ok := ValidValue(f.Kind(), f.Value())
		f.SetInvalid(!ok)
		if !ok && first == nil {
			first = f
		}
	}

	if first == nil {
		return true
	}
	first.Focus()
	c.showBanner(model.MessageError)
	return false
}

// Submit validates the form and posts a snapshot of it. It returns
// ErrInvalid without any network call when validation fails, and the
// transport error when the request could not be completed.
func (c *Controller) Submit(ctx context.Context) error {
	c.setState(StateValidating)
	if !c.Validate() {
		c.setState(StateIdle)
		return ErrInvalid
	}

	sub := c.Snapshot()

	c.setState(StateSubmitting)
	restore := c.enterLoading()
	err := c.submitter.Submit(ctx, sub)
	restore()
	c.setState(StateIdle)

	if err != nil {
		c.log.Error("contact form submission failed", "error", err)
		c.showBanner(model.MessageError)
		return fmt.Errorf("submit contact form: %w", err)
	}

	c.showBanner(model.MessageSuccess)
	c.Reset()
	return nil
}

// Snapshot builds a submission from the trimmed field values.
func (c *Controller) Snapshot() model.FormSubmission {
	values := make(map[string]string, len(model.FormFields))
	for _, f := range c.el.Form.Fields() {
		values[f.Name()] = strings.TrimSpace(f.Value())
	}
	return model.NewFormSubmission(c.now(), values)
}

// Reset empties every field and clears every error indicator.
func (c *Controller) Reset() {
	for _, f := range c.el.Form.Fields() {
		f.SetValue("")
		f.SetInvalid(false)
	}
}

// ClearFieldError removes f's error indicator regardless of its validity.
func (c *Controller) ClearFieldError(f Field) {
	f.SetInvalid(false)
}

// enterLoading disables the submit control and swaps its label; the
// returned func undoes both.
func (c *Controller) enterLoading() func() {
	btn := c.el.Submit
	label := btn.Label()
	btn.SetDisabled(true)
	btn.SetLabel(c.busyLabel)
	return func() {
		btn.SetLabel(label)
		btn.SetDisabled(false)
	}
}

// showBanner makes the banner for state the only visible one and hides it
// again after the banner duration.
func (c *Controller) showBanner(state model.MessageState) {
	show, other := c.el.Success, c.el.Error
	if state == model.MessageError {
		show, other = c.el.Error, c.el.Success
	}

	other.Hide()
	show.Show()

	c.mu.Lock()
	c.message = state
	c.mu.Unlock()

	c.scheduler.AfterFunc(c.bannerDuration, func() {
		show.Hide()
		c.mu.Lock()
		if c.message == state {
			c.message = model.MessageHidden
		}
		c.mu.Unlock()
	})
}
