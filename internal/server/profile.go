package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"edumate/internal/models"
	"edumate/internal/service"
)

type profileRequest struct {
	Name      string `form:"name" binding:"required,max=120"`
	StudentID string `form:"student_id" binding:"max=20"`
	Email     string `form:"email" binding:"required,email,max=120"`
	Password  string `form:"password"`
}

func (s *Server) handleProfile(c *gin.Context) {
	user, err := s.accounts.Profile(c.Request.Context(), currentIdentity(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.render(c, http.StatusOK, "user_profile.html", gin.H{"Title": "Profile", "User": user})
}

func (s *Server) handleEditProfileForm(c *gin.Context) {
	user, err := s.accounts.Profile(c.Request.Context(), currentIdentity(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.render(c, http.StatusOK, "edit_profile.html", gin.H{"Title": "Edit profile", "User": user})
}

// handleEditProfile updates the caller's own profile; a blank password keeps the old one.
func (s *Server) handleEditProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBind(&req); err != nil {
		s.flash(c, flashDanger, bindMessage(err))
		s.redirect(c, "/profile/edit")
		return
	}

	_, err := s.accounts.UpdateProfile(c.Request.Context(), currentIdentity(c), service.ProfileInput{
		Name:      req.Name,
		StudentID: req.StudentID,
		Email:     req.Email,
		Password:  req.Password,
	})
	switch {
	case err == nil:
		s.flash(c, flashSuccess, "Profile updated successfully.")
		s.redirect(c, "/profile")
	case errors.Is(err, models.ErrConflict), errors.Is(err, models.ErrValidation):
		s.flash(c, flashDanger, models.Message(err, "Profile could not be updated."))
		s.redirect(c, "/profile/edit")
	default:
		s.respondError(c, err)
	}
}

// handleStaticPage renders an informational page that needs no data.
func (s *Server) handleStaticPage(page, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.render(c, http.StatusOK, page, gin.H{"Title": title})
	}
}
