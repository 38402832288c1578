package view

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

// FS has all file system interfaces needed by Set.
type FS interface {
	fs.FS
	fs.ReadDirFS
}

type Config struct {
	// If true, templates will be compiled on every render. Good for development.
	CompileOnRender bool
	// Path is the templates directory on disk used when CompileOnRender is set.
	Path string
	// FS is used when CompileOnRender is not set.
	FS FS
}

const (
	Suffix    = ".tmpl"
	layout    = "layouts/main" + Suffix
	sharedDir = "shared"
)

// Set is a collection of compiled page templates. Each page is parsed together with
// the main layout, the shared partials and the partials of its own directory.
//
// Template names are "dir/name" relative to the templates root, e.g. "login/sign_up".
// Names whose file part starts with "_" are partials and render without the layout.
type Set struct {
	config *Config

	mu                sync.RWMutex
	pages             map[string]*template.Template
	partialCollection map[string]*template.Template
	sharedPartials    *template.Template
}

func New(config Config) (*Set, error) {
	if config.CompileOnRender {
		dirFS, ok := os.DirFS(config.Path).(FS)
		if !ok {
			return nil, errors.New("view: os.DirFS does not support ReadDir")
		}
		config.FS = dirFS
	}
	if config.FS == nil {
		return nil, errors.New("view: no template filesystem")
	}

	s := &Set{config: &config}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load (re)compiles all templates.
func (s *Set) Load() error {
	log.Debug("view.Load()")

	sharedPartials, shared, err := s.loadSharedPartials()
	if err != nil {
		return err
	}

	viewDirs, err := s.listViewDirs()
	if err != nil {
		return err
	}

	pages := make(map[string]*template.Template)
	partialCollection := make(map[string]*template.Template)

	for _, viewDir := range viewDirs {
		views, partials, err := s.scanViewDir(viewDir)
		if err != nil {
			return err
		}

		if len(partials) > 0 {
			files := append(append([]string{}, partials...), shared...)
			tmpl, err := template.ParseFS(s.config.FS, files...)
			if err != nil {
				return err
			}
			partialCollection[viewDir] = tmpl
		}

		for _, view := range views {
			allTemplates := make([]string, 0, len(shared)+len(partials)+2)
			allTemplates = append(allTemplates, layout, view)
			allTemplates = append(allTemplates, shared...)
			allTemplates = append(allTemplates, partials...)

			tmpl, err := template.ParseFS(s.config.FS, allTemplates...)
			if err != nil {
				return err
			}

			pages[view] = tmpl
			log.Debug("view.Load(): loaded template:", view)
		}
	}

	s.mu.Lock()
	s.pages = pages
	s.partialCollection = partialCollection
	s.sharedPartials = sharedPartials
	s.mu.Unlock()

	return nil
}

// Render renders a template by name. The output is buffered so a failing
// template never leaves a half-written page.
func (s *Set) Render(w io.Writer, name string, data interface{}) error {
	key, err := parseTemplateName(name)
	if err != nil {
		return err
	}

	if s.config.CompileOnRender {
		if err := s.Load(); err != nil {
			return err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var tmpl *template.Template
	var execName string
	switch {
	case key.isShared:
		tmpl, execName = s.sharedPartials, key.name
	case key.isPartial:
		tmpl, execName = s.partialCollection[key.viewDir], key.name
	default:
		tmpl = s.pages[key.FullPath()]
	}

	if tmpl == nil || (execName != "" && tmpl.Lookup(execName) == nil) {
		return fmt.Errorf("template not found: %s", name)
	}

	var buf bytes.Buffer
	if execName != "" {
		err = tmpl.ExecuteTemplate(&buf, execName, data)
	} else {
		err = tmpl.Execute(&buf, data)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	_, err = buf.WriteTo(w)
	return err
}

func parseTemplateName(name string) (viewKey, error) {
	parts := strings.SplitN(name, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return viewKey{}, fmt.Errorf("template name parse error: %q is not dir/name", name)
	}
	if strings.Contains(parts[1], "/") {
		return viewKey{}, errors.New("template name parse error: subdirectories not supported")
	}

	nameWithExtension := parts[1]
	if !strings.Contains(nameWithExtension, ".") {
		nameWithExtension += Suffix
	}

	return viewKey{
		viewDir:   parts[0],
		name:      nameWithExtension,
		isPartial: strings.HasPrefix(parts[1], "_"),
		isShared:  parts[0] == sharedDir,
	}, nil
}

type viewKey struct {
	viewDir   string
	name      string
	isPartial bool
	isShared  bool
}

func (k viewKey) FullPath() string {
	return k.viewDir + "/" + k.name
}

// loadSharedPartials parses all partials in the "shared" directory and returns their paths.
func (s *Set) loadSharedPartials() (*template.Template, []string, error) {
	partials, err := s.listPartials(sharedDir)
	if err != nil {
		return nil, nil, err
	}
	if len(partials) == 0 {
		return template.New(sharedDir), partials, nil
	}

	tmpl, err := template.ParseFS(s.config.FS, partials...)
	return tmpl, partials, err
}

// scanViewDir returns all pages and partials in the given directory.
func (s *Set) scanViewDir(viewDir string) (views []string, partials []string, err error) {
	entries, err := s.config.FS.ReadDir(viewDir)
	if err != nil {
		return nil, nil, err
	}

	for _, f := range entries {
		if !isTemplate(f) {
			continue
		}

		if isPartial(f) {
			partials = append(partials, viewDir+"/"+f.Name())
		} else {
			views = append(views, viewDir+"/"+f.Name())
		}
	}
	return views, partials, nil
}

// listViewDirs returns all template directories other than "shared" or "layouts".
func (s *Set) listViewDirs() ([]string, error) {
	entries, err := s.config.FS.ReadDir(".")
	if err != nil {
		return nil, err
	}

	viewDirs := make([]string, 0, len(entries))
	for _, f := range entries {
		if f.IsDir() && f.Name() != sharedDir && f.Name() != "layouts" {
			viewDirs = append(viewDirs, f.Name())
		}
	}
	return viewDirs, nil
}

func (s *Set) listPartials(viewDir string) ([]string, error) {
	entries, err := s.config.FS.ReadDir(viewDir)
	if err != nil {
		return nil, err
	}

	partials := make([]string, 0, len(entries))
	for _, f := range entries {
		if isPartial(f) {
			partials = append(partials, viewDir+"/"+f.Name())
		}
	}
	return partials, nil
}

// isTemplate returns true if the entry has the template suffix.
func isTemplate(entry fs.DirEntry) bool {
	return !entry.IsDir() && strings.HasSuffix(entry.Name(), Suffix)
}

// isPartial returns true for template files starting with _
func isPartial(entry fs.DirEntry) bool {
	return isTemplate(entry) && strings.HasPrefix(entry.Name(), "_")
}
