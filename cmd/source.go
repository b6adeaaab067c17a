package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Tiliavir/time-manager/internal/engine"
	"github.com/Tiliavir/time-manager/internal/i18n"
	"github.com/Tiliavir/time-manager/internal/page"
	"github.com/Tiliavir/time-manager/internal/portal"
)

// Page sources recorded with each summary.
const (
	sourceFile   = "page"
	sourcePortal = "portal"
)

var errNoSource = errors.New("no page source: pass --page FILE or --url URL, or set portal.url in the config")

// loadPage reads the portal page from --page, or fetches it from --url or the
// configured portal URL.
func (a *app) loadPage(ctx context.Context) (*page.Document, string, error) {
	if a.pagePath != "" {
		f, err := os.Open(a.pagePath)
		if err != nil {
			return nil, "", fmt.Errorf("opening page: %w", err)
		}
		defer f.Close()
		doc, err := page.Parse(f)
		return doc, sourceFile, err
	}

	url := a.url
	if url == "" {
		url = a.cfg.Portal.URL
	}
	if url == "" {
		return nil, "", errNoSource
	}

	tokenPath, err := portal.TokenPath()
	if err != nil {
		return nil, "", err
	}
	client, err := portal.NewClient(ctx, a.cfg.Portal, tokenPath, a.log)
	if err != nil {
		return nil, "", err
	}
	a.log.WithField("url", url).Debug("Fetching portal page")
	body, err := client.FetchPage(ctx, url)
	if err != nil {
		return nil, "", err
	}
	doc, err := page.Parse(bytes.NewReader(body))
	return doc, sourcePortal, err
}

func (a *app) tr() i18n.Strings {
	return i18n.For(a.cfg.Language)
}

func (a *app) newEngine() *engine.Engine {
	return engine.New(engine.Settings{
		DailyHours:         a.cfg.DailyWorkHours,
		WorkingDaysPerWeek: a.cfg.WorkingDaysPerWeek,
		Lunch:              a.cfg.LunchBreak.Policy(),
		Language:           i18n.Match(a.cfg.Language),
	}, a.log)
}

// pass runs one computation over doc, sampling the clock once.
func (a *app) pass(doc *page.Document) engine.Result {
	if !doc.Ready(a.tr().Welcome) {
		a.log.Warn("Page does not look fully loaded; figures may be incomplete")
	}
	snap := doc.Snapshot(a.cfg.PunchMarker)
	if snap.Empty() {
		a.log.Warn("No scheduler days or punches found on the page")
	}
	return a.newEngine().Compute(snap, a.now())
}

// compute loads the page and runs one pass.
func (a *app) compute(ctx context.Context) (engine.Result, *page.Document, string, error) {
	doc, source, err := a.loadPage(ctx)
	if err != nil {
		return engine.Result{}, nil, "", err
	}
	return a.pass(doc), doc, source, nil
}
