// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/alexedwards/scs/v2"

	"github.com/railvoice/railvoice/internal/gateway"
	"github.com/railvoice/railvoice/internal/render"
)

// adminPages are the template names handlers render in tests. Each test
// template prints its title and nothing else; template content is
// covered by the render package's own tests.
var adminPages = []string{
	"dashboard", "routes", "route_form", "routes_import",
	"translations", "audio", "segments", "announcements", "generator",
	"isl_videos", "picker", "picker_apply", "events",
}

// testRenderer builds a renderer over minimal in-memory templates.
func testRenderer(t *testing.T, sm *scs.SessionManager) *render.Renderer {
	t.Helper()

	fsys := fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}{{template "content" .}}{{end}}`),
		},
		"layouts/admin.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}[{{.Title}}]{{template "page" .}}{{end}}`),
		},
		"auth/login.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}[{{.Title}}]{{end}}`),
		},
	}
	for _, name := range adminPages {
		fsys["admin/"+name+".html"] = &fstest.MapFile{
			Data: []byte(`{{define "page"}}{{end}}`),
		}
	}

	r, err := render.New(render.Config{TemplatesFS: fsys, SessionManager: sm})
	if err != nil {
		t.Fatalf("building test renderer: %v", err)
	}
	return r
}

// testSessionManager returns an in-memory session manager.
func testSessionManager() *scs.SessionManager {
	sm := scs.New()
	sm.Cookie.Secure = false
	return sm
}

// testGateway points a gateway client at a fake backend handler.
func testGateway(t *testing.T, backend http.Handler) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	client := gateway.New(srv.URL)
	t.Cleanup(func() { _ = client.Close() })
	return client
}
