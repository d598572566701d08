package http

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"vibe-resume/internal/domain"
	"vibe-resume/internal/usecase"
	"vibe-resume/pkg/ai"
	"vibe-resume/pkg/extract"
	"vibe-resume/pkg/latex"
)

type Handler struct {
	conv     *usecase.Conversation
	store    usecase.SessionStore
	compiler *latex.Compiler
	sync     *latex.SyncEngine
	vision   *ai.Client
}

func NewHandler(conv *usecase.Conversation, store usecase.SessionStore, compiler *latex.Compiler, sync *latex.SyncEngine, vision *ai.Client) *Handler {
	return &Handler{conv: conv, store: store, compiler: compiler, sync: sync, vision: vision}
}

func (h *Handler) Register(app *fiber.App) {
	app.Get("/templates", h.ListTemplates)
	app.Get("/template/:name", h.GetTemplate)
	app.Post("/compile", h.Compile)
	app.Get("/pdf/:jobID", h.ServePDF)
	app.Post("/synctex/forward", h.SyncForward)
	app.Post("/synctex/reverse", h.SyncReverse)
	app.Post("/chat", h.Chat)
	app.Get("/session/:id", h.GetSession)
	app.Put("/session/:id", h.PutSession)
	app.Delete("/session/:id", h.DeleteSession)
}

func (h *Handler) ListTemplates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"templates": latex.TemplateNames()})
}

func (h *Handler) GetTemplate(c *fiber.Ctx) error {
	if code, ok := latex.SampleTemplates[c.Params("name")]; ok {
		return c.JSON(fiber.Map{"success": true, "code": code})
	}
	return c.JSON(fiber.Map{"success": false, "error": "Template not found"})
}

type compileReq struct {
	LatexCode string `json:"latex_code"`
}

func (h *Handler) Compile(c *fiber.Ctx) error {
	var req compileReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid payload"})
	}
	// Empty source never reaches the compiler.
	if strings.TrimSpace(req.LatexCode) == "" {
		return c.JSON(fiber.Map{"success": false, "error": "No LaTeX code provided"})
	}

	res, err := h.compiler.Compile(c.Context(), req.LatexCode)
	if err != nil {
		return c.JSON(fiber.Map{"success": false, "error": toolErrorMessage(err)})
	}
	if !res.Success {
		return c.JSON(fiber.Map{"success": false, "error": res.Message})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": res.Message,
		"job_id":  res.JobID,
		"pdf_url": "/pdf/" + res.JobID,
	})
}

func (h *Handler) ServePDF(c *fiber.Ctx) error {
	jobID := c.Params("jobID")
	// Job ids are generated UUIDs; anything else is rejected before it can
	// name a path.
	if _, err := uuid.Parse(jobID); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid job id")
	}
	pdfPath := h.compiler.PDFPath(jobID)
	if _, err := os.Stat(pdfPath); err != nil {
		return c.Status(fiber.StatusNotFound).SendString("PDF not found")
	}
	c.Set("Content-Type", "application/pdf")
	return c.SendFile(pdfPath)
}

type forwardReq struct {
	JobID string `json:"job_id"`
	Line  int    `json:"line"`
}

func (h *Handler) SyncForward(c *fiber.Ctx) error {
	var req forwardReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid payload"})
	}
	res, err := h.sync.Locate(c.Context(), req.JobID, req.Line)
	if err != nil {
		return c.JSON(fiber.Map{"success": false, "error": toolErrorMessage(err)})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"found":   res.Found,
		"page":    res.Page,
		"x":       res.X,
		"y":       res.Y,
		"width":   res.Width,
		"height":  res.Height,
	})
}

type reverseReq struct {
	JobID string  `json:"job_id"`
	Page  int     `json:"page"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

func (h *Handler) SyncReverse(c *fiber.Ctx) error {
	var req reverseReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid payload"})
	}
	res, err := h.sync.LocateSource(c.Context(), req.JobID, req.Page, req.X, req.Y)
	if err != nil {
		return c.JSON(fiber.Map{"success": false, "error": toolErrorMessage(err)})
	}
	return c.JSON(fiber.Map{"success": true, "found": res.Found, "line": res.Line})
}

// Chat handles one conversational turn: multipart form with message,
// session_id, optional current_latex and an optional uploaded file.
func (h *Handler) Chat(c *fiber.Ctx) error {
	turn := usecase.Turn{
		Message:      c.FormValue("message"),
		CurrentLatex: c.FormValue("current_latex"),
	}
	sessionID := c.FormValue("session_id")
	if sessionID == "" {
		sessionID = "default"
	}

	if file, err := c.FormFile("file"); err == nil && file != nil {
		turn.HasUpload = true
		turn.UploadText = h.uploadText(c.Context(), file.Filename, file.Header.Get("Content-Type"), func() ([]byte, error) {
			f, openErr := file.Open()
			if openErr != nil {
				return nil, openErr
			}
			defer f.Close()
			return io.ReadAll(f)
		})
	}

	if strings.TrimSpace(turn.Message) == "" && !turn.HasUpload {
		return c.JSON(fiber.Map{"success": false, "error": "Please provide some input"})
	}

	res, err := h.conv.HandleTurn(c.Context(), sessionID, turn)
	if err != nil {
		log.Printf("chat: turn failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "internal error"})
	}

	switch {
	case res.NewSource != "":
		return c.JSON(fiber.Map{"success": true, "latex_code": res.NewSource})
	case res.Advice != "":
		return c.JSON(fiber.Map{"success": false, "error": res.Advice, "is_chat_response": true})
	default:
		return c.JSON(fiber.Map{"success": false, "error": res.Rejection, "is_chat_response": true})
	}
}

// uploadText extracts text from an uploaded file, routing images through
// the vision model. Failures degrade to an explanatory string so the turn
// can still proceed.
func (h *Handler) uploadText(ctx context.Context, filename, mimeType string, read func() ([]byte, error)) string {
	data, err := read()
	if err != nil {
		return fmt.Sprintf("Error reading upload: %v", err)
	}
	if extract.IsImage(mimeType) && h.vision != nil {
		text, visionErr := h.vision.DescribeImage(ctx, data, mimeType)
		if visionErr != nil {
			return fmt.Sprintf("Error extracting image: %v", errors.Cause(visionErr))
		}
		return text
	}
	text, err := extract.Text(filename, mimeType, data)
	if err != nil {
		return fmt.Sprintf("Error extracting document: %v", errors.Cause(err))
	}
	return text
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	sess, err := h.store.Get(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "failed to load session"})
	}
	if sess == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "session not found"})
	}
	return c.JSON(sess)
}

// PutSession replaces the whole session record; clients send full state,
// not deltas, so last writer wins.
func (h *Handler) PutSession(c *fiber.Ctx) error {
	var sess domain.Session
	if err := c.BodyParser(&sess); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid payload"})
	}
	sess.ID = c.Params("id")
	if err := h.store.Put(c.Context(), &sess); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "failed to save session"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	if err := h.conv.Clear(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "failed to delete session"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// toolErrorMessage keeps actionable detail (install instructions) while
// normalizing wrapped tool failures into a single user-facing string.
func toolErrorMessage(err error) string {
	switch {
	case errors.Is(err, latex.ErrToolNotFound):
		return err.Error()
	case errors.Is(err, latex.ErrTimeout):
		return "Compilation timed out."
	case errors.Is(err, latex.ErrSyncDataMissing):
		return "No sync data for this job. Compile the document first."
	case errors.Is(err, latex.ErrMalformedToolOutput):
		return "Sync tool returned unreadable output."
	default:
		return err.Error()
	}
}
