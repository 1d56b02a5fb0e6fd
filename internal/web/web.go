// Package web renders the public flagging site: a shared base layout with
// overridable blocks plus the embedded stylesheet, favicon and banner.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"flaggingd/pkg/types"
)

//go:embed templates/*.html static/*
var content embed.FS

// reachOrder fixes the display order of reaches on every page.
var reachOrder = []string{"2", "3", "4", "5"}

// Service provides the model data shown on the Home and Detailed Outputs pages.
type Service interface {
	Predictions(reaches []int, hours int) (types.ModelResponse, error)
}

// Site renders the HTML pages. Each page extends the base layout and must
// define title and content; head, header and footer may be overridden.
type Site struct {
	svc   Service
	log   zerolog.Logger
	pages map[string]*template.Template
}

// New parses the embedded page templates against the base layout.
func New(svc Service, log zerolog.Logger) (*Site, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"home", "about", "output", "api"} {
		t, err := template.ParseFS(content, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Site{svc: svc, log: log, pages: pages}, nil
}

// Routes returns the site router: pages plus embedded static assets.
func (s *Site) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.handleHome)
	r.Get("/about", s.handleAbout)
	r.Get("/output", s.handleOutput)
	r.Get("/api", s.handleAPIIndex)
	staticFS, _ := fs.Sub(content, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	return r
}

type reachFlag struct {
	Reach   string
	Safe    bool
	Percent string
}

type homeData struct {
	Unavailable bool
	Updated     string
	Flags       []reachFlag
}

func (s *Site) handleHome(w http.ResponseWriter, r *http.Request) {
	var data homeData
	resp, err := s.svc.Predictions(nil, 1)
	if err != nil {
		s.log.Warn().Err(err).Msg("home: predictions unavailable")
		data.Unavailable = true
	} else {
		data.Updated = resp.TimeReturned
		for _, key := range reachOrder {
			series, ok := resp.Models[key]
			if !ok || len(series.Safe) == 0 {
				continue
			}
			last := len(series.Safe) - 1
			data.Flags = append(data.Flags, reachFlag{
				Reach:   key,
				Safe:    series.Safe[last],
				Percent: fmt.Sprintf("%.0f%%", series.Probability[last]*100),
			})
		}
	}
	s.render(w, "home", data)
}

func (s *Site) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, "about", nil)
}

type outputRow struct {
	Time        string
	LogOdds     string
	Probability string
	Safe        bool
}

type outputReach struct {
	Reach string
	Rows  []outputRow
}

type outputData struct {
	Unavailable  bool
	Version      string
	TimeReturned string
	Reaches      []outputReach
}

func (s *Site) handleOutput(w http.ResponseWriter, r *http.Request) {
	var data outputData
	resp, err := s.svc.Predictions(nil, 24)
	if err != nil {
		s.log.Warn().Err(err).Msg("output: predictions unavailable")
		data.Unavailable = true
		s.render(w, "output", data)
		return
	}
	data.Version = resp.Version
	data.TimeReturned = resp.TimeReturned
	for _, key := range reachOrder {
		series, ok := resp.Models[key]
		if !ok {
			continue
		}
		rows := make([]outputRow, len(series.Time))
		for i := range series.Time {
			rows[i] = outputRow{
				Time:        series.Time[i],
				LogOdds:     fmt.Sprintf("%.3f", series.LogOdds[i]),
				Probability: fmt.Sprintf("%.3f", series.Probability[i]),
				Safe:        series.Safe[i],
			}
		}
		data.Reaches = append(data.Reaches, outputReach{Reach: key, Rows: rows})
	}
	s.render(w, "output", data)
}

func (s *Site) handleAPIIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "api", nil)
}

// render executes a page into a buffer first so a template failure yields a
// clean 500 instead of a torn page.
func (s *Site) render(w http.ResponseWriter, name string, data any) {
	t, ok := s.pages[name]
	if !ok {
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		s.log.Error().Err(err).Str("page", name).Msg("render failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
