package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/MaoSong2022/arxiv-daily/internal/review"
)

// Exported file names offered for download.
const (
	ExportJSONFile     = "exported_papers.json"
	ExportMarkdownFile = "exported_papers.md"
)

// Server serves the interactive review page for one daily report and
// the endpoints behind its controls.
//
// Design decision: Every interaction posts to the server and the page
// re-renders from the review state, so the state is the single source
// of truth. A mutex serializes mutations; review traffic is one reader
// clicking through a page, not a throughput concern.
type Server struct {
	// state is the review view model being served.
	state *review.State

	// engine is the gin router.
	engine *gin.Engine

	// logger for structured logging.
	logger *slog.Logger

	// mu serializes state mutations.
	mu sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server around a review state.
func New(state *review.State, opts ...Option) (*Server, error) {
	s := &Server{
		state:  state,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	tmpl, err := pageTemplate()
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tmpl)

	s.engine = engine
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the review page until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("serving review page", "addr", addr)
	return s.engine.Run(addr)
}

// routes registers all endpoints.
func (s *Server) routes() {
	s.engine.GET("/", s.handleIndex)

	s.engine.POST("/cards/:id/abstract", s.handleToggleAbstract)
	s.engine.POST("/cards/:id/visibility", s.handleToggleVisibility)
	s.engine.POST("/cards/:id/keywords", s.handleAddKeywordField)
	s.engine.POST("/cards/:id/keywords/save", s.handleSaveKeywords)
	s.engine.POST("/cards/:id/tldr", s.handleToggleTLDR)
	s.engine.POST("/cards/:id/comments", s.handleToggleComments)

	s.engine.POST("/density", s.handleSetDensity)

	s.engine.POST("/sections/:id/visibility", s.handleSectionVisibility)
	s.engine.POST("/sections/:id/delete", s.handleDeleteSection)
	s.engine.POST("/active-section", s.handleActiveSection)

	s.engine.GET("/export/json", s.handleExportJSON)
	s.engine.GET("/export/markdown", s.handleExportMarkdown)
}

// handleIndex renders the review page.
func (s *Server) handleIndex(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.HTML(http.StatusOK, "page", newPageData(s.state))
}

// backToCard redirects to the page anchored at the card's section.
// Controls are plain forms; each mutation re-renders the whole page.
func (s *Server) backToCard(c *gin.Context, cardID string) {
	c.Redirect(http.StatusSeeOther, "/#card-"+cardID)
}

func (s *Server) handleToggleAbstract(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	if !s.state.ToggleAbstract(id) {
		c.String(http.StatusNotFound, "unknown paper %s", id)
		return
	}
	s.backToCard(c, id)
}

func (s *Server) handleToggleVisibility(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	if !s.state.ToggleVisibility(id) {
		c.String(http.StatusNotFound, "unknown paper %s", id)
		return
	}
	s.backToCard(c, id)
}

func (s *Server) handleAddKeywordField(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	if !s.state.AddKeywordField(id) {
		c.String(http.StatusNotFound, "unknown paper %s", id)
		return
	}
	s.backToCard(c, id)
}

// handleSaveKeywords stores every keyword field of one card.
// The form posts fields as keyword-0, keyword-1, ... in field order.
func (s *Server) handleSaveKeywords(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	card, ok := s.state.Card(id)
	if !ok {
		c.String(http.StatusNotFound, "unknown paper %s", id)
		return
	}
	for i := range card.KeywordFields {
		value, exists := c.GetPostForm("keyword-" + strconv.Itoa(i))
		if !exists {
			continue
		}
		s.state.UpdateKeywordField(id, i, value)
	}
	s.backToCard(c, id)
}

// handleToggleTLDR enters or leaves TL;DR edit mode. When the pane is
// in edit mode the posted text is stored as the draft first, so the
// commit picks up exactly what was typed.
func (s *Server) handleToggleTLDR(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	card, ok := s.state.Card(id)
	if !ok {
		c.String(http.StatusNotFound, "unknown paper %s", id)
		return
	}
	if card.TLDR.Editing {
		if text, exists := c.GetPostForm("text"); exists {
			s.state.SetTLDRDraft(id, text)
		}
	}
	s.state.ToggleTLDREdit(id)
	s.backToCard(c, id)
}

func (s *Server) handleToggleComments(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	card, ok := s.state.Card(id)
	if !ok {
		c.String(http.StatusNotFound, "unknown paper %s", id)
		return
	}
	if card.Comments.Editing {
		if text, exists := c.GetPostForm("text"); exists {
			s.state.SetCommentsDraft(id, text)
		}
	}
	s.state.ToggleCommentsEdit(id)
	s.backToCard(c, id)
}

func (s *Server) handleSetDensity(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	level := c.PostForm("level")
	if err := s.state.SetDensity(review.Density(level)); err != nil {
		c.String(http.StatusBadRequest, "invalid density %q", level)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleSectionVisibility(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	visible := c.PostForm("visible") == "true"
	if !s.state.ShowSection(id, visible) {
		c.String(http.StatusNotFound, "unknown category %s", id)
		return
	}
	c.Redirect(http.StatusSeeOther, "/#section-"+id)
}

// handleDeleteSection deletes a category. The form carries
// confirm=true only after the reader passed the confirmation prompt;
// anything else counts as a declined prompt and changes nothing.
func (s *Server) handleDeleteSection(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	confirmed := c.PostForm("confirm") == "true"
	if _, ok := s.state.Section(id); !ok {
		c.String(http.StatusNotFound, "unknown category %s", id)
		return
	}
	s.state.DeleteSection(id, func() bool { return confirmed })
	c.Redirect(http.StatusSeeOther, "/")
}

// activeSectionRequest is the scroll report posted by the page script.
type activeSectionRequest struct {
	ScrollY int            `json:"scroll_y"`
	Offsets map[string]int `json:"offsets"`
}

// handleActiveSection resolves which sidebar entry should be
// highlighted for the reported scroll position.
func (s *Server) handleActiveSection(c *gin.Context) {
	var req activeSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	active := s.state.ActiveSection(req.ScrollY, req.Offsets)
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"active": active})
}

func (s *Server) handleExportJSON(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.Header("Content-Disposition", `attachment; filename="`+ExportJSONFile+`"`)
	c.Header("Content-Type", "application/json")
	if err := s.state.ExportJSON(c.Writer); err != nil {
		s.exportError(c, err)
	}
}

func (s *Server) handleExportMarkdown(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.Header("Content-Disposition", `attachment; filename="`+ExportMarkdownFile+`"`)
	c.Header("Content-Type", "text/markdown; charset=utf-8")
	if err := s.state.ExportMarkdown(c.Writer); err != nil {
		s.exportError(c, err)
	}
}

// exportError maps export failures to responses. Nothing selected is
// the reader's situation to fix, not a server fault.
func (s *Server) exportError(c *gin.Context, err error) {
	if errors.Is(err, review.ErrNothingSelected) {
		c.Header("Content-Disposition", "")
		c.String(http.StatusConflict, "no papers selected for export")
		return
	}
	s.logger.Error("export failed", "error", err)
	c.String(http.StatusInternalServerError, "export failed")
}
