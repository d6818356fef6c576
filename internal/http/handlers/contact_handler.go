// Contact HTTP handler.
//
// POST /contact stores a private message for the site owner. The stored
// message is never readable through the API; the response carries only the
// new id.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-portfolio-backend/internal/http/middleware"
)

// ContactRequest is the JSON payload of the contact form.
type ContactRequest struct {
	Name    string `json:"name" example:"Ada Lovelace"`
	Email   string `json:"email" example:"ada@example.com"`
	Message string `json:"message" example:"I'd like to talk about a new brand identity."`
}

// ContactResponse confirms a stored contact message.
type ContactResponse struct {
	Message string `json:"message" example:"Message sent successfully"`
	ID      string `json:"id" example:"0b7e5d3c-2f1a-4c59-9f0e-1d2c3b4a5e6f"`
}

// SendContactMessage godoc
// @ID          sendContactMessage
// @Summary     Send a contact message
// @Description Stores a message for the site owner and returns its id.
// @Tags        Contact
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false  "Idempotency key for safe retries"
// @Param       body             body    handlers.ContactRequest  true  "Message"
//
// @Success     201  {object}  handlers.ContactResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed or malformed body"
// @Failure     413  {object}  handlers.ErrorResponse  "Body too large"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limited"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /contact [post]
func (h *Handlers) SendContactMessage(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	key, _ := middleware.GetIdempotencyKey(c)
	id, replayed, err := h.contact.Submit(c.Request.Context(), key, req.Name, req.Email, req.Message)
	if err != nil {
		failSubmit(c, err, "Failed to send message")
		return
	}
	if replayed {
		c.Header(middleware.HeaderIdempotencyReplayed, "true")
	}
	ok(c, http.StatusCreated, ContactResponse{Message: "Message sent successfully", ID: id})
}
