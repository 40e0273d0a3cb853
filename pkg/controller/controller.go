// Package controller owns the review-sync state machine for the restaurant
// screen. It decides when requests may be issued, tracks the loading phase,
// and tells the view what to show.
//
// Each request is split in three steps so the machine never blocks and can be
// tested without a network: a begin step (Start, SubmitReview, Reload) that
// transitions to Loading and returns an Op, the Op itself which performs the
// I/O and may run on any goroutine, and Apply, which feeds the Op's Outcome
// back into the machine. Begin and Apply must be called from one goroutine.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/neotica/restaurantreview/pkg/client"
	"github.com/neotica/restaurantreview/pkg/model"
	"github.com/neotica/restaurantreview/pkg/reviews"
)

// ErrAlreadyStarted is returned by Start when the machine has left Idle.
var ErrAlreadyStarted = errors.New("controller already started")

// RestaurantClient is the remote service as seen by the controller.
type RestaurantClient interface {
	FetchRestaurant(ctx context.Context, id string) (model.Restaurant, error)
	PostReview(ctx context.Context, id, reviewerName, text string) (model.Restaurant, error)
}

// Journal records review submissions. It is optional.
type Journal interface {
	RecordSubmission(ctx context.Context, s *model.Submission) error
}

// View receives the controller's notifications.
type View interface {
	OnLoadingChanged(loading bool)
	OnRestaurantLoaded(d Display)
	OnError(message string)
	// OnInputCleared asks the view to empty its review input after a
	// successful post.
	OnInputCleared()
}

// Display is what the view needs to render the screen.
type Display struct {
	ID          string
	Name        string
	Description string
	City        string
	Address     string
	Rating      float64
	PictureID   string
	PictureURL  string
	Reviews     []string
}

// Config holds the fixed identity values for the screen.
type Config struct {
	RestaurantID   string
	ReviewerName   string
	PictureBaseURL string
}

type opKind int

const (
	opStart opKind = iota + 1
	opReload
	opPost
)

func (k opKind) String() string {
	switch k {
	case opStart:
		return "start"
	case opReload:
		return "reload"
	case opPost:
		return "post"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of an Op.
type Outcome struct {
	seq        uint64
	kind       opKind
	restaurant model.Restaurant
	err        error
}

// Err returns the request error, if any.
func (o Outcome) Err() error { return o.err }

// Op performs the request started by a begin step.
type Op func(ctx context.Context) Outcome

// Controller is the review-sync state machine.
type Controller struct {
	cfg     Config
	client  RestaurantClient
	view    View
	journal Journal
	logger  *slog.Logger
	now     func() time.Time

	state SyncState
	prior SyncState // state held before the in-flight request
	seq   uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger failures are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithJournal records every review submission in j.
func WithJournal(j Journal) Option {
	return func(c *Controller) {
		c.journal = j
	}
}

// New creates an Idle controller.
func New(cfg Config, rc RestaurantClient, view View, opts ...Option) *Controller {
	c := &Controller{
		cfg:    cfg,
		client: rc,
		view:   view,
		logger: slog.Default(),
		now:    time.Now,
		state:  Idle(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() SyncState { return c.state }

// Loading reports whether a request is in flight.
func (c *Controller) Loading() bool { return c.state.phase == PhaseLoading }

// Start issues the initial fetch. It is only valid from Idle.
func (c *Controller) Start() (Op, error) {
	if c.state.phase != PhaseIdle {
		return nil, ErrAlreadyStarted
	}
	return c.begin(opStart, c.fetch()), nil
}

// Reload fetches the restaurant again after a load or a failure. It returns
// nil when a request is in flight or the machine has not started.
func (c *Controller) Reload() Op {
	switch c.state.phase {
	case PhaseLoaded, PhaseFailed:
		return c.begin(opReload, c.fetch())
	}
	return nil
}

// SubmitReview posts text as a review from the configured reviewer. Blank
// text or a request already in flight makes it a no-op that returns nil.
func (c *Controller) SubmitReview(text string) Op {
	if strings.TrimSpace(text) == "" || c.Loading() {
		return nil
	}

	id, reviewer := c.cfg.RestaurantID, c.cfg.ReviewerName
	rc, journal, logger, now := c.client, c.journal, c.logger, c.now
	_, hasSnapshot := c.state.Restaurant()

	return c.begin(opPost, func(ctx context.Context) (model.Restaurant, error) {
		r, err := rc.PostReview(ctx, id, reviewer, text)
		if err == nil && !r.HasHeader() && !hasSnapshot {
			// No loaded header to carry over; fetch one. The post already
			// succeeded, so a failed fetch keeps the review-only response.
			if full, ferr := rc.FetchRestaurant(ctx, id); ferr == nil {
				r = full
			} else {
				logger.Warn("failed to fetch header after post", "restaurant_id", id, "error", ferr)
			}
		}
		if journal != nil {
			sub := &model.Submission{
				RestaurantID: id,
				Reviewer:     reviewer,
				Text:         text,
				Outcome:      model.SubmissionPosted,
				CreatedAt:    now(),
			}
			if err != nil {
				sub.Outcome = model.SubmissionFailed
				sub.Error = err.Error()
			}
			if jerr := journal.RecordSubmission(ctx, sub); jerr != nil {
				logger.Warn("failed to record submission", "error", jerr)
			}
		}
		return r, err
	})
}

// Run executes op and applies its outcome on the calling goroutine.
// A nil op is ignored.
func (c *Controller) Run(ctx context.Context, op Op) {
	if op == nil {
		return
	}
	c.Apply(op(ctx))
}

// Apply feeds a finished request back into the machine. Outcomes that do not
// belong to the in-flight request are dropped.
func (c *Controller) Apply(o Outcome) {
	if c.state.phase != PhaseLoading || o.seq != c.seq {
		c.logger.Debug("dropping stale outcome", "op", o.kind, "seq", o.seq, "current", c.seq)
		return
	}

	if o.err != nil {
		c.logger.Error("request failed", "op", o.kind.String(), "restaurant_id", c.cfg.RestaurantID, "error", o.err)
		if o.kind == opStart {
			c.state = Failed(o.err.Error())
		} else {
			c.state = c.prior
		}
		c.view.OnLoadingChanged(false)
		c.view.OnError(errorMessage(o.kind, o.err))
		return
	}

	r := o.restaurant
	if !r.HasHeader() {
		if prev, ok := c.prior.Restaurant(); ok {
			r = r.WithHeaderFrom(prev)
		}
	}
	if r.ID == "" {
		r.ID = c.cfg.RestaurantID
	}

	c.state = Loaded(r)
	c.logger.Info("restaurant loaded", "op", o.kind.String(), "restaurant_id", r.ID, "reviews", len(r.Reviews))
	c.view.OnLoadingChanged(false)
	c.view.OnRestaurantLoaded(c.display(r))
	if o.kind == opPost {
		c.view.OnInputCleared()
	}
}

func (c *Controller) fetch() func(context.Context) (model.Restaurant, error) {
	id, rc := c.cfg.RestaurantID, c.client
	return func(ctx context.Context) (model.Restaurant, error) {
		return rc.FetchRestaurant(ctx, id)
	}
}

func (c *Controller) begin(kind opKind, call func(context.Context) (model.Restaurant, error)) Op {
	c.prior = c.state
	c.state = Loading()
	c.seq++
	seq := c.seq

	c.view.OnLoadingChanged(true)

	return func(ctx context.Context) Outcome {
		r, err := call(ctx)
		return Outcome{seq: seq, kind: kind, restaurant: r, err: err}
	}
}

func (c *Controller) display(r model.Restaurant) Display {
	pictureBase := c.cfg.PictureBaseURL
	if pictureBase == "" {
		pictureBase = client.DefaultBaseURL
	}
	return Display{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		City:        r.City,
		Address:     r.Address,
		Rating:      r.Rating,
		PictureID:   r.PictureID,
		PictureURL:  client.PictureURL(pictureBase, client.PictureLarge, r.PictureID),
		Reviews:     reviews.ToDisplayStrings(r.Reviews),
	}
}

func errorMessage(kind opKind, err error) string {
	verb := "load restaurant"
	if kind == opPost {
		verb = "post review"
	}
	switch {
	case client.IsTransport(err):
		return "Could not " + verb + ": network unavailable"
	case client.IsBadResponse(err):
		var ce *client.Error
		errors.As(err, &ce)
		return "Could not " + verb + ": " + ce.Message
	default:
		return "Could not " + verb + ": " + err.Error()
	}
}
