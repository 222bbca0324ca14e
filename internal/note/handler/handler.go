package handler

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quicknotes/notes-api/internal/note"
	"github.com/quicknotes/notes-api/internal/note/service"
	"github.com/quicknotes/notes-api/pkg/logger"
)

const (
	notePart       = "note"
	legacyNotePart = "note_str"
	filePart       = "file"
)

// RegisterNoteRoutes mounts the note API on rg. createMW runs before the
// create handler only (API key, for instance).
func RegisterNoteRoutes(rg gin.IRouter, svc service.Service, createMW ...gin.HandlerFunc) {
	h := &noteHandler{svc: svc}
	rg.POST("/notes", append(createMW, h.create)...)
	rg.GET("/notes/:note_id", h.get)
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

type noteHandler struct {
	svc service.Service
}

// create accepts a form with a JSON "note" part and an optional "file" part.
func (h *noteHandler) create(c *gin.Context) {
	raw, ok := c.GetPostForm(notePart)
	if !ok {
		raw = c.PostForm(legacyNotePart)
	}
	in, err := note.DecodeInput(raw)
	if err != nil {
		writeError(c, err)
		return
	}

	var att *service.Attachment
	fh, err := c.FormFile(filePart)
	switch {
	case err == nil:
		f, oerr := fh.Open()
		if oerr != nil {
			writeError(c, note.NewValidationError("file: "+oerr.Error()))
			return
		}
		defer f.Close()
		att = &service.Attachment{
			Filename:    uploadFilename(fh),
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		writeError(c, note.NewValidationError("file: "+err.Error()))
		return
	}

	created, err := h.svc.Create(c.Request.Context(), in, att)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// uploadFilename returns the filename parameter exactly as the client sent it.
// multipart.FileHeader.Filename has already been through filepath.Base.
func uploadFilename(fh *multipart.FileHeader) string {
	_, params, err := mime.ParseMediaType(fh.Header.Get("Content-Disposition"))
	if err == nil && params["filename"] != "" {
		return params["filename"]
	}
	return fh.Filename
}

func (h *noteHandler) get(c *gin.Context) {
	out, err := h.svc.Get(c.Request.Context(), c.Param("note_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// writeError maps the error taxonomy onto HTTP. Storage causes are logged but
// never sent to the client.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, note.ErrValidation):
		logger.Debugf("rejected note payload: %v", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
	case errors.Is(err, note.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Note not found"})
	default:
		logger.WithFields(map[string]interface{}{"method": c.Request.Method, "route": c.FullPath()}).
			Errorf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
	}
}
