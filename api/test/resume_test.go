package test

import (
	"bytes"
	"mime"
	"net/http"
	"strings"
	"testing"

	"github.com/carriereplus/storefront/core/resume"
)

type resumeTest struct {
	*TestEnv
	client *http.Client
}

func TestResume(t *testing.T) {
	env, err := NewTestEnv(t, "resume_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	rt := &resumeTest{TestEnv: env, client: env.Visitor(t)}

	res := rt.showOK(t)
	if res.FirstName != "Jean" || res.Email != "demo@carriereplus.fr" {
		t.Fatalf("resume should derive from the profile, got %s <%s>", res.FirstName, res.Email)
	}
	if len(res.Languages) != 3 || len(res.Certifications) != 2 {
		t.Fatalf("default lists missing: %d languages, %d certifications", len(res.Languages), len(res.Certifications))
	}

	title := "Développeur Go"
	color := "#10b981"
	res = rt.updateOK(t, resume.ResumeUp{JobTitle: &title, PrimaryColor: &color})
	if res.JobTitle != title || res.Style.PrimaryColor != color {
		t.Fatalf("update not applied: %+v", res)
	}
	if res.FirstName != "Jean" {
		t.Fatalf("update should leave other fields, got %q", res.FirstName)
	}

	bad := "blue"
	w, b := rt.Do(t, rt.client, http.MethodPut, "/resume", resume.ResumeUp{PrimaryColor: &bad})
	expectStatus(t, w, b, http.StatusBadRequest)

	scale := 1.5
	w, b = rt.Do(t, rt.client, http.MethodPut, "/resume", resume.ResumeUp{FontScale: &scale})
	expectStatus(t, w, b, http.StatusBadRequest)

	w, b = rt.Do(t, rt.client, http.MethodPut, "/resume", resume.ResumeUp{Sections: map[string]bool{"hobbies": false}})
	expectStatus(t, w, b, http.StatusBadRequest)

	// edits survive the request
	if got := rt.showOK(t); got.JobTitle != title {
		t.Fatalf("update was not stored, got %q", got.JobTitle)
	}

	w, b = rt.Do(t, rt.client, http.MethodDelete, "/resume", nil)
	expectStatus(t, w, b, http.StatusOK)
	if got := decode[resume.Resume](t, b); got.JobTitle == title || got.Style.PrimaryColor == color {
		t.Fatalf("reset should derive the resume again, got %+v", got)
	}
}

func TestResumeSections(t *testing.T) {
	env, err := NewTestEnv(t, "resume_sections_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	rt := &resumeTest{TestEnv: env, client: env.Visitor(t)}

	html := rt.previewOK(t, "")
	if !strings.Contains(html, `data-section="languages"`) {
		t.Fatal("languages should be shown by default")
	}

	w, b := rt.Do(t, rt.client, http.MethodPut, "/resume/sections/languages", nil)
	expectStatus(t, w, b, http.StatusOK)
	if res := decode[resume.Resume](t, b); res.Sections.Visible(resume.SectionLanguages) {
		t.Fatal("toggle should hide languages")
	}

	for _, id := range []string{"template1", "template2", "template3"} {
		html := rt.previewOK(t, id)
		if strings.Contains(html, `data-section="languages"`) {
			t.Fatalf("%s renders a hidden section", id)
		}
		if !strings.Contains(html, `data-section="skills"`) {
			t.Fatalf("%s lost a visible section", id)
		}
	}

	w, b = rt.Do(t, rt.client, http.MethodPut, "/resume/sections/languages", nil)
	expectStatus(t, w, b, http.StatusOK)
	if res := decode[resume.Resume](t, b); !res.Sections.Visible(resume.SectionLanguages) {
		t.Fatal("second toggle should show languages again")
	}

	w, b = rt.Do(t, rt.client, http.MethodPut, "/resume/sections/hobbies", nil)
	expectStatus(t, w, b, http.StatusBadRequest)
}

func TestResumeLists(t *testing.T) {
	env, err := NewTestEnv(t, "resume_lists_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	rt := &resumeTest{TestEnv: env, client: env.Visitor(t)}
	before := rt.showOK(t)

	w, b := rt.Do(t, rt.client, http.MethodPost, "/resume/experience", nil)
	expectStatus(t, w, b, http.StatusCreated)
	created := decode[resume.EntryNew](t, b)
	if created.ID == "" || len(created.Resume.Experience) != len(before.Experience)+1 {
		t.Fatalf("entry not added: %+v", created)
	}

	w, b = rt.Do(t, rt.client, http.MethodPut, "/resume/experience/"+created.ID,
		map[string]string{"position": "Développeur Go", "company": "Acme"})
	expectStatus(t, w, b, http.StatusOK)
	res := decode[resume.Resume](t, b)
	last := res.Experience[len(res.Experience)-1]
	if last.ID != created.ID || last.Position != "Développeur Go" || last.Company != "Acme" {
		t.Fatalf("entry not updated: %+v", last)
	}

	w, b = rt.Do(t, rt.client, http.MethodPut, "/resume/experience/"+created.ID, map[string]string{"salary": "1"})
	expectStatus(t, w, b, http.StatusBadRequest)

	w, b = rt.Do(t, rt.client, http.MethodPut, "/resume/experience/missing", map[string]string{"position": "x"})
	expectStatus(t, w, b, http.StatusNotFound)

	w, b = rt.Do(t, rt.client, http.MethodDelete, "/resume/experience/"+created.ID, nil)
	expectStatus(t, w, b, http.StatusOK)
	if res := decode[resume.Resume](t, b); len(res.Experience) != len(before.Experience) {
		t.Fatalf("entry not removed: %d entries", len(res.Experience))
	}

	// removing an unknown entry changes nothing
	w, b = rt.Do(t, rt.client, http.MethodDelete, "/resume/experience/missing", nil)
	expectStatus(t, w, b, http.StatusOK)

	w, b = rt.Do(t, rt.client, http.MethodPost, "/resume/skills", nil)
	expectStatus(t, w, b, http.StatusCreated)
	skills := decode[resume.EntryNew](t, b)

	w, b = rt.Do(t, rt.client, http.MethodPut, "/resume/skills/"+skills.ID, map[string]string{"value": "Go"})
	expectStatus(t, w, b, http.StatusOK)
	if res := decode[resume.Resume](t, b); res.Skills[len(res.Skills)-1] != "Go" {
		t.Fatalf("skill not updated: %v", res.Skills)
	}

	w, b = rt.Do(t, rt.client, http.MethodPost, "/resume/hobbies", nil)
	expectStatus(t, w, b, http.StatusBadRequest)
}

func TestResumeTemplates(t *testing.T) {
	env, err := NewTestEnv(t, "resume_templates_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	rt := &resumeTest{TestEnv: env, client: env.Visitor(t)}

	w, b := rt.Do(t, rt.client, http.MethodGet, "/resume/templates", nil)
	expectStatus(t, w, b, http.StatusOK)
	if all := decode[[]resume.Template](t, b); len(all) != 3 {
		t.Fatalf("got %d templates, want 3", len(all))
	}

	html := rt.previewOK(t, "template2")
	if !strings.Contains(html, `class="cv template2"`) {
		t.Fatal("preview ignores the selected template")
	}

	html = rt.previewOK(t, "unknown")
	if !strings.Contains(html, `class="cv template1"`) {
		t.Fatal("unknown templates should fall back to the default")
	}
}

func TestResumeExport(t *testing.T) {
	env, err := NewTestEnv(t, "resume_export_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	rt := &resumeTest{TestEnv: env, client: env.Visitor(t)}

	w, b := rt.Do(t, rt.client, http.MethodPost, "/resume/export?template=template3&page=fit", nil)
	expectStatus(t, w, b, http.StatusOK)

	if ct := w.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type: got %s", ct)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Fatal("body is not a PDF")
	}

	_, params, err := mime.ParseMediaType(w.Header.Get("Content-Disposition"))
	if err != nil {
		t.Fatal(err)
	}
	if params["filename"] != "CV_Jean_Dupont.pdf" {
		t.Fatalf("filename: got %s", params["filename"])
	}

	// a failed export leaves the resume untouched
	before := rt.showOK(t)
	rt.Raster.setFail(true)

	w, b = rt.Do(t, rt.client, http.MethodPost, "/resume/export", nil)
	expectStatus(t, w, b, http.StatusBadGateway)
	if !bytes.Contains(b, []byte("génération du PDF")) {
		t.Fatalf("export failure message missing: %s", b)
	}
	if after := rt.showOK(t); after.JobTitle != before.JobTitle || len(after.Experience) != len(before.Experience) {
		t.Fatal("failed export changed the resume")
	}

	// the burst is spent
	rt.Raster.setFail(false)
	w, b = rt.Do(t, rt.client, http.MethodPost, "/resume/export", nil)
	expectStatus(t, w, b, http.StatusTooManyRequests)

	// other visitors keep their own allowance
	other := env.Visitor(t)
	w, b = rt.Do(t, other, http.MethodPost, "/resume/export?page=poster", nil)
	expectStatus(t, w, b, http.StatusBadRequest)
}

func (rt *resumeTest) showOK(t *testing.T) resume.Resume {
	t.Helper()
	w, b := rt.Do(t, rt.client, http.MethodGet, "/resume", nil)
	expectStatus(t, w, b, http.StatusOK)
	return decode[resume.Resume](t, b)
}

func (rt *resumeTest) updateOK(t *testing.T, up resume.ResumeUp) resume.Resume {
	t.Helper()
	w, b := rt.Do(t, rt.client, http.MethodPut, "/resume", up)
	expectStatus(t, w, b, http.StatusOK)
	return decode[resume.Resume](t, b)
}

func (rt *resumeTest) previewOK(t *testing.T, template string) string {
	t.Helper()

	path := "/resume/preview"
	if template != "" {
		path += "?template=" + template
	}

	w, b := rt.Do(t, rt.client, http.MethodGet, path, nil)
	expectStatus(t, w, b, http.StatusOK)
	if ct := w.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("preview content type: got %s", ct)
	}
	return string(b)
}
