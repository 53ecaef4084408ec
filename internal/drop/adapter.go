// Package drop places externally dragged payloads (library nodes) into a
// session. Resolution of the payload into files is asynchronous: Begin
// parses the payload, Pending.Wait resolves it off the event loop, and
// Apply merges the result into whatever the playlist is by then.
package drop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/sessionbrew/internal/domain"
	"github.com/mmcdole/sessionbrew/internal/hittest"
	"github.com/mmcdole/sessionbrew/internal/playlist"
)

// Request is a parsed drop waiting for resolution
type Request struct {
	Payload domain.Payload
	Target  hittest.Target
}

// Resolved is the outcome of resolving a Request
type Resolved struct {
	Request
	Files []domain.FileDescriptor
	Err   error // Wraps domain.ErrResolutionFailure
}

// Pending is a drop whose payload is being resolved
type Pending struct {
	req      Request
	resolver domain.DropResolver
}

// Request returns the parsed drop
func (p *Pending) Request() Request {
	return p.req
}

// Wait resolves the payload. It blocks, so run it outside the event loop.
func (p *Pending) Wait(ctx context.Context) Resolved {
	files, err := p.resolver.Resolve(ctx, p.req.Payload.Data)
	if err != nil {
		return Resolved{Request: p.req, Err: fmt.Errorf("%w: %v", domain.ErrResolutionFailure, err)}
	}
	return Resolved{Request: p.req, Files: files}
}

// Adapter turns external drops into structural operations
type Adapter struct {
	resolver domain.DropResolver
	ids      domain.IDGenerator
	sink     domain.NotificationSink
	logger   *slog.Logger
	pending  int
}

// NewAdapter creates a drop adapter
func NewAdapter(resolver domain.DropResolver, ids domain.IDGenerator, sink domain.NotificationSink, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	if sink == nil {
		sink = domain.DiscardSink{}
	}
	if ids == nil {
		ids = domain.UUIDGenerator{}
	}
	return &Adapter{resolver: resolver, ids: ids, sink: sink, logger: logger}
}

// Busy reports whether a drop has begun and not yet been applied
func (a *Adapter) Busy() bool {
	return a.pending > 0
}

// Begin parses a raw payload dropped on target. Malformed payloads are
// logged and returned as ErrMalformedPayload without notifying the user.
func (a *Adapter) Begin(raw []byte, target hittest.Target) (*Pending, error) {
	payload, err := domain.ParsePayload(raw)
	if err != nil {
		a.logger.Warn("ignoring malformed drop payload", "error", err, "size", len(raw))
		return nil, err
	}
	if target == nil {
		target = hittest.BackgroundTarget{}
	}
	a.pending++
	a.logger.Debug("drop started", "label", payload.Label, "target", target.String())
	return &Pending{req: Request{Payload: payload, Target: target}, resolver: a.resolver}, nil
}

// Apply merges a resolution into current and returns the new playlist.
// changed is false when the drop was rejected or resolved to nothing.
func (a *Adapter) Apply(current domain.Playlist, r Resolved) (next domain.Playlist, changed bool) {
	if a.pending > 0 {
		a.pending--
	}
	label := r.Payload.Label

	if r.Err != nil {
		a.logger.Error("drop resolution failed", "error", r.Err, "label", label)
		a.sink.Notify(domain.Notice{
			Severity: domain.SeverityError,
			Summary:  "Could not add files",
			Detail:   fmt.Sprintf("%q: %v", label, r.Err),
		})
		return current, false
	}
	if len(r.Files) == 0 {
		a.logger.Info("drop resolved to no files", "label", label)
		a.sink.Notify(domain.Notice{
			Severity: domain.SeverityInfo,
			Summary:  "Nothing to add",
			Detail:   fmt.Sprintf("%q contains no usable files", label),
		})
		return current, false
	}

	items := playlist.NewItems(a.ids, r.Files)

	target := r.Target
	if t, ok := target.(hittest.SectionTarget); ok {
		if _, exists := current.Section(t.SectionID); !exists {
			// The section went away while resolving
			a.logger.Warn("drop target vanished", "sectionID", t.SectionID, "label", label)
			a.sink.Notify(domain.Notice{
				Severity: domain.SeverityWarn,
				Summary:  "Drop target removed",
				Detail:   "Files were added to a new section instead",
			})
			target = hittest.BackgroundTarget{}
		}
	}

	switch t := target.(type) {
	case hittest.GapTarget:
		return a.insert(current, playlist.GapToAbsolute(current, t.Index), label, items)
	case hittest.SectionTarget:
		return a.append(current, t.SectionID, items)
	default:
		_, hi := playlist.InsertBounds(current)
		return a.insert(current, hi, label, items)
	}
}

func (a *Adapter) insert(current domain.Playlist, at int, label string, items []domain.Item) (domain.Playlist, bool) {
	title := label
	if title == "" {
		title = playlist.DefaultSectionTitle
	}
	sec := playlist.NewSection(a.ids, title, items)
	next, idx, err := playlist.InsertSection(current, at, sec)
	if err != nil {
		a.logger.Error("failed to insert dropped section", "error", err, "title", title)
		a.sink.Notify(domain.Notice{Severity: domain.SeverityError, Summary: "Could not add files", Detail: err.Error()})
		return current, false
	}
	a.logger.Info("dropped into new section", "sectionID", sec.ID, "title", title, "index", idx, "items", len(items))
	a.sink.Notify(domain.Notice{
		Severity: domain.SeveritySuccess,
		Summary:  "Files added",
		Detail:   fmt.Sprintf("Added %s to new section %q", countItems(len(items)), title),
	})
	return next, true
}

func (a *Adapter) append(current domain.Playlist, sectionID string, items []domain.Item) (domain.Playlist, bool) {
	sec, _ := current.Section(sectionID)
	next, err := playlist.AppendItems(current, sectionID, items)
	if err != nil {
		detail := err.Error()
		if errors.Is(err, domain.ErrLockedSection) {
			detail = fmt.Sprintf("%q is locked", sec.Title)
		}
		a.logger.Warn("drop rejected", "error", err, "sectionID", sectionID)
		a.sink.Notify(domain.Notice{Severity: domain.SeverityWarn, Summary: "Cannot drop here", Detail: detail})
		return current, false
	}
	a.logger.Info("dropped into section", "sectionID", sectionID, "items", len(items))
	a.sink.Notify(domain.Notice{
		Severity: domain.SeveritySuccess,
		Summary:  "Files added",
		Detail:   fmt.Sprintf("Added %s to %q", countItems(len(items)), sec.Title),
	})
	return next, true
}

// Drop runs a whole drop synchronously: parse, resolve and apply
func (a *Adapter) Drop(ctx context.Context, current domain.Playlist, raw []byte, target hittest.Target) (domain.Playlist, bool, error) {
	pending, err := a.Begin(raw, target)
	if err != nil {
		return current, false, err
	}
	r := pending.Wait(ctx)
	next, changed := a.Apply(current, r)
	return next, changed, r.Err
}

func countItems(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}
