package view

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystemBehavior(t *testing.T) {
	dirFS := os.DirFS(".")
	dirFS2, ok := dirFS.(fs.ReadDirFS)
	require.True(t, ok, "os.DirFS must implement fs.ReadDirFS for CompileOnRender")

	entries, err := dirFS2.ReadDir(".")
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/main.tmpl":  {Data: []byte(`<html><title>{{block "title" .}}default{{end}}</title>{{block "content" .}}{{end}}</html>`)},
		"shared/_alert.tmpl": {Data: []byte(`{{if .}}<div role="alert">{{.}}</div>{{end}}`)},
		"pages/show.tmpl":    {Data: []byte(`{{define "title"}}Show{{end}}{{define "content"}}<p>{{.Data}}</p>{{template "_item.tmpl" .}}{{end}}`)},
		"pages/_item.tmpl":   {Data: []byte(`<i>{{.CSRFToken}}</i>{{template "_alert.tmpl" .Data}}`)},
		"pages/notes.txt":    {Data: []byte(`ignored`)},
	}
}

func render(t *testing.T, s *Set, name string, data interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf, name, data))
	return buf.String()
}

func TestSet_RendersPageWithLayoutAndPartials(t *testing.T) {
	s, err := New(Config{FS: testFS()})
	require.NoError(t, err)

	out := render(t, s, "pages/show", Page{CSRFToken: "tok", Data: "<b>hi</b>"})

	assert.Contains(t, out, "<title>Show</title>")
	assert.Contains(t, out, "<p>&lt;b&gt;hi&lt;/b&gt;</p>")
	assert.Contains(t, out, "<i>tok</i>")
	assert.Contains(t, out, `<div role="alert">&lt;b&gt;hi&lt;/b&gt;</div>`)
}

func TestSet_RendersPartialWithoutLayout(t *testing.T) {
	s, err := New(Config{FS: testFS()})
	require.NoError(t, err)

	out := render(t, s, "pages/_item", Page{CSRFToken: "tok", Data: ""})

	assert.Equal(t, "<i>tok</i>", out)
}

func TestSet_RendersSharedPartial(t *testing.T) {
	s, err := New(Config{FS: testFS()})
	require.NoError(t, err)

	assert.Equal(t, `<div role="alert">boom</div>`, render(t, s, "shared/_alert", "boom"))
}

func TestSet_NotFound(t *testing.T) {
	s, err := New(Config{FS: testFS()})
	require.NoError(t, err)

	for _, name := range []string{"pages/missing", "pages/_missing", "other/show", "show", "pages/a/b"} {
		err := s.Render(&bytes.Buffer{}, name, nil)
		assert.Error(t, err, name)
	}
}

func TestSet_FailedRenderWritesNothing(t *testing.T) {
	fsys := testFS()
	fsys["pages/broken.tmpl"] = &fstest.MapFile{Data: []byte(`{{define "content"}}before{{.Data.Missing}}{{end}}`)}
	s, err := New(Config{FS: fsys})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = s.Render(&buf, "pages/broken", Page{Data: 1})

	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestSet_BrokenTemplateFailsLoad(t *testing.T) {
	fsys := testFS()
	fsys["pages/bad.tmpl"] = &fstest.MapFile{Data: []byte(`{{define "content"}}{{end`)}

	_, err := New(Config{FS: fsys})
	assert.Error(t, err)
}

func TestComponent_UsesEmbeddedViews(t *testing.T) {
	var buf bytes.Buffer
	err := Component("errors/error", struct {
		Code    int
		Message string
	}{404, "Not Found"}).Render(context.Background(), &buf)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Not Found")
}
