package resume

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/carriereplus/storefront/api/web"
	"github.com/carriereplus/storefront/api/weberr"
	"github.com/carriereplus/storefront/core/session"
	"github.com/carriereplus/storefront/validate"
)

const exportFailedMessage = "Une erreur est survenue lors de la génération du PDF. Veuillez réessayer."

type EntryNew struct {
	ID     string `json:"id"`
	Resume Resume `json:"resume"`
}

func owner(ctx context.Context) (string, error) {
	s, err := session.Get(ctx)
	if err != nil {
		return "", weberr.InternalError(err)
	}
	return s.OwnerID, nil
}

// editError maps edit failures to client errors; anything else is left for
// the error middleware to report as internal.
func editError(err error, what string) error {
	switch {
	case errors.Is(err, ErrEntryNotFound):
		return weberr.NotFound(err)
	case errors.Is(err, ErrUnknownList),
		errors.Is(err, ErrUnknownField),
		errors.Is(err, ErrUnknownSection):
		return weberr.Invalid(err)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func HandleShow(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ownerID, err := owner(ctx)
		if err != nil {
			return err
		}

		res, err := svc.Load(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("loading resume: %w", err)
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}

func HandleUpdate(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ownerID, err := owner(ctx)
		if err != nil {
			return err
		}

		var up ResumeUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.Invalid(err)
		}

		res, err := svc.Update(ctx, ownerID, func(res *Resume) error {
			return res.Apply(up)
		})
		if err != nil {
			return editError(err, "updating resume")
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}

// HandleReset throws the edits away and derives the resume from the
// profile again.
func HandleReset(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ownerID, err := owner(ctx)
		if err != nil {
			return err
		}

		if err := svc.Reset(ctx, ownerID); err != nil {
			return fmt.Errorf("resetting resume: %w", err)
		}

		res, err := svc.Load(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("loading resume: %w", err)
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}

func HandleToggleSection(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ownerID, err := owner(ctx)
		if err != nil {
			return err
		}
		section := Section(web.Param(r, "section"))

		res, err := svc.Update(ctx, ownerID, func(res *Resume) error {
			return res.Toggle(section)
		})
		if err != nil {
			return editError(err, fmt.Sprintf("toggling section[%s]", section))
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}

func HandleCreateEntry(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ownerID, err := owner(ctx)
		if err != nil {
			return err
		}
		list := List(web.Param(r, "list"))

		var id string
		res, err := svc.Update(ctx, ownerID, func(res *Resume) error {
			id, err = res.Add(list)
			return err
		})
		if err != nil {
			return editError(err, fmt.Sprintf("adding to %s", list))
		}

		return web.Respond(ctx, w, EntryNew{ID: id, Resume: res}, http.StatusCreated)
	}
}

func HandleUpdateEntry(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ownerID, err := owner(ctx)
		if err != nil {
			return err
		}
		list := List(web.Param(r, "list"))
		id := web.Param(r, "id")

		var fields map[string]string
		if err := web.Decode(w, r, &fields); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		res, err := svc.Update(ctx, ownerID, func(res *Resume) error {
			return res.Update(list, id, fields)
		})
		if err != nil {
			return editError(err, fmt.Sprintf("updating %s[%s]", list, id))
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}

func HandleDeleteEntry(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ownerID, err := owner(ctx)
		if err != nil {
			return err
		}
		list := List(web.Param(r, "list"))
		id := web.Param(r, "id")

		res, err := svc.Update(ctx, ownerID, func(res *Resume) error {
			return res.Remove(list, id)
		})
		if err != nil {
			return editError(err, fmt.Sprintf("removing %s[%s]", list, id))
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}

func HandleTemplates() web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, Templates(), http.StatusOK)
	}
}

func HandlePreview(svc *Service, renderer *Renderer) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ownerID, err := owner(ctx)
		if err != nil {
			return err
		}

		res, err := svc.Load(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("loading resume: %w", err)
		}

		tmpl := LookupOrDefault(TemplateID(web.Query(r, "template")))
		html, err := renderer.Render(tmpl.Layout(res))
		if err != nil {
			return err
		}

		return web.RespondRaw(ctx, w, html, "text/html; charset=utf-8", http.StatusOK)
	}
}

func HandleExport(svc *Service, exporter *Exporter) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ownerID, err := owner(ctx)
		if err != nil {
			return err
		}

		mode := PageMode(web.Query(r, "page"))
		if mode != "" && !mode.Valid() {
			return weberr.Invalid(fmt.Errorf("page must be one of %s or %s", PageA4, PageFit))
		}
		id := TemplateID(web.Query(r, "template"))

		res, err := svc.Load(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("loading resume: %w", err)
		}

		doc, err := exporter.Export(ctx, res, id, mode)
		if err != nil {
			return weberr.Notice(fmt.Errorf("exporting resume: %w", err), exportFailedMessage,
				weberr.WithFields(map[string]any{"template": LookupOrDefault(id).ID}))
		}

		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
		return web.RespondRaw(ctx, w, doc.PDF, "application/pdf", http.StatusOK)
	}
}
