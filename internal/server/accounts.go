package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"edumate/internal/models"
	"edumate/internal/service"
)

type signupRequest struct {
	Name      string `form:"name" binding:"required,max=120"`
	StudentID string `form:"student_id" binding:"max=20"`
	Email     string `form:"email" binding:"required,email,max=120"`
	Password  string `form:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `form:"email" binding:"required"`
}

type resetPasswordRequest struct {
	Token    string `form:"token" binding:"required"`
	Password string `form:"password" binding:"required"`
	Confirm  string `form:"confirm_password" binding:"required,eqfield=Password"`
}

const forgotPasswordAck = "If that email is registered, password reset instructions have been sent (demo only)."

func (s *Server) handleSignupForm(c *gin.Context) {
	s.render(c, http.StatusOK, "signup.html", gin.H{"Title": "Sign up"})
}

// handleSignup registers a user and sends them to the login form.
func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		s.flash(c, flashDanger, bindMessage(err))
		s.redirect(c, "/signup")
		return
	}

	_, err := s.accounts.Signup(c.Request.Context(), service.SignupInput{
		Name:      req.Name,
		StudentID: req.StudentID,
		Email:     req.Email,
		Password:  req.Password,
	})
	switch {
	case err == nil:
		s.flash(c, flashSuccess, "Signup successful! You can now log in.")
		s.redirect(c, "/login")
	case errors.Is(err, models.ErrConflict), errors.Is(err, models.ErrValidation):
		s.flash(c, flashDanger, models.Message(err, "Signup failed."))
		s.redirect(c, "/signup")
	default:
		s.respondError(c, err)
	}
}

func (s *Server) handleLoginForm(c *gin.Context) {
	s.render(c, http.StatusOK, "login.html", gin.H{"Title": "Log in"})
}

// handleLogin opens a session. Every credential failure shows the same message.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		s.flash(c, flashDanger, models.AuthFailureMessage)
		s.redirect(c, "/login")
		return
	}

	sess, _, err := s.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, models.ErrAuth) {
		s.flash(c, flashDanger, models.AuthFailureMessage)
		s.redirect(c, "/login")
		return
	}
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.setSessionCookie(c, sess)
	s.flash(c, flashSuccess, "Logged in successfully!")
	s.redirect(c, "/")
}

func (s *Server) handleLogout(c *gin.Context) {
	token, _ := c.Cookie(sessionCookie)
	if err := s.accounts.Logout(c.Request.Context(), token); err != nil {
		s.respondError(c, err)
		return
	}
	s.clearSessionCookie(c)
	s.flash(c, flashInfo, "You have been logged out.")
	s.redirect(c, "/login")
}

func (s *Server) handleForgotPasswordForm(c *gin.Context) {
	s.render(c, http.StatusOK, "forgot_password.html", gin.H{"Title": "Forgot password"})
}

// handleForgotPassword acknowledges the request identically for known and unknown emails.
func (s *Server) handleForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		s.flash(c, flashDanger, bindMessage(err))
		s.render(c, http.StatusOK, "forgot_password.html", gin.H{"Title": "Forgot password"})
		return
	}
	if err := s.accounts.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		s.respondError(c, err)
		return
	}
	s.flash(c, flashInfo, forgotPasswordAck)
	s.render(c, http.StatusOK, "forgot_password.html", gin.H{"Title": "Forgot password"})
}

func (s *Server) handleResetPasswordForm(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		s.flash(c, flashDanger, "This reset link is invalid.")
		s.redirect(c, "/forgot-password")
		return
	}
	s.render(c, http.StatusOK, "reset_password.html", gin.H{"Title": "Reset password", "Token": token})
}

func (s *Server) handleResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		s.flash(c, flashDanger, bindMessage(err))
		s.redirect(c, "/reset-password?token="+url.QueryEscape(c.PostForm("token")))
		return
	}

	err := s.accounts.ResetPassword(c.Request.Context(), req.Token, req.Password)
	switch {
	case err == nil:
		s.flash(c, flashSuccess, "Your password has been reset. Please log in.")
		s.redirect(c, "/login")
	case errors.Is(err, models.ErrAuth):
		s.flash(c, flashDanger, models.Message(err, "This reset link is invalid."))
		s.redirect(c, "/forgot-password")
	case errors.Is(err, models.ErrValidation):
		s.flash(c, flashDanger, models.Message(err, "Password is invalid."))
		s.redirect(c, "/reset-password?token="+url.QueryEscape(req.Token))
	default:
		s.respondError(c, err)
	}
}
