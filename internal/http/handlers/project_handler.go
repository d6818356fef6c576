// Project HTTP handlers.
//
// This file exposes the read-only portfolio catalog:
//   - GET /projects          (summaries, optional category/tag filter)
//   - GET /projects/slugs    (every slug, catalog order)
//   - GET /projects/{slug}   (full record plus previous/next summaries)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-portfolio-backend/internal/catalog"
)

// ProjectResponse is a full project with its resolved neighbors. Prev and
// Next are null when the reference is absent or points nowhere.
type ProjectResponse struct {
	Project catalog.Project  `json:"project"`
	Prev    *catalog.Summary `json:"prev"`
	Next    *catalog.Summary `json:"next"`
}

// ListProjects godoc
// @ID          listProjects
// @Summary     List project summaries
// @Description Returns project cards in catalog order. category and tag filter
// @Description case-insensitively; empty values match everything.
// @Tags        Projects
// @Produce     json
//
// @Param       category  query  string  false  "Category"  example(Brand Identity)
// @Param       tag       query  string  false  "Tag"       example(Packaging)
//
// @Success     200  {array}  catalog.Summary
// @Router      /projects [get]
func (h *Handlers) ListProjects(c *gin.Context) {
	ok(c, http.StatusOK, h.projects.Filter(c.Query("category"), c.Query("tag")))
}

// ListProjectSlugs godoc
// @ID          listProjectSlugs
// @Summary     List project slugs
// @Description Returns every slug in catalog order, for static path generation.
// @Tags        Projects
// @Produce     json
// @Success     200  {array}  string
// @Router      /projects/slugs [get]
func (h *Handlers) ListProjectSlugs(c *gin.Context) {
	ok(c, http.StatusOK, h.projects.Slugs())
}

// GetProject godoc
// @ID          getProject
// @Summary     Get a project
// @Description Returns the full project record with previous/next navigation.
// @Tags        Projects
// @Produce     json
//
// @Param       slug  path  string  true  "Project slug"  example(urban-roots-coffee)
//
// @Success     200  {object}  handlers.ProjectResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Project not found"
// @Router      /projects/{slug} [get]
func (h *Handlers) GetProject(c *gin.Context) {
	slug := c.Param("slug")
	p, found := h.projects.GetBySlug(slug)
	if !found {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "Project not found")
		return
	}
	prev, next := h.projects.Neighbors(slug)
	ok(c, http.StatusOK, ProjectResponse{Project: p, Prev: prev, Next: next})
}
