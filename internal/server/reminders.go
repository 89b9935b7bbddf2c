package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"edumate/internal/models"
	"edumate/internal/service"
)

type reminderRequest struct {
	Title        string `form:"title" binding:"required,max=120"`
	ReminderTime string `form:"reminder_time" binding:"required"`
	Notes        string `form:"notes"`
}

func (r reminderRequest) input() service.ReminderInput {
	return service.ReminderInput{Title: r.Title, ReminderTime: r.ReminderTime, Notes: r.Notes}
}

const reminderUnavailable = "Reminder not found or access denied."

func (s *Server) handleListReminders(c *gin.Context) {
	reminders, err := s.reminders.List(c.Request.Context(), currentIdentity(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.render(c, http.StatusOK, "reminder.html", gin.H{"Title": "Reminders", "Reminders": reminders})
}

func (s *Server) handleAddReminderForm(c *gin.Context) {
	s.render(c, http.StatusOK, "add_reminder.html", gin.H{"Title": "Add reminder"})
}

func (s *Server) handleAddReminder(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBind(&req); err != nil {
		s.flash(c, flashDanger, bindMessage(err))
		s.redirect(c, "/reminder/add")
		return
	}
	if _, err := s.reminders.Create(c.Request.Context(), currentIdentity(c), req.input()); err != nil {
		s.reminderError(c, err, "/reminder/add")
		return
	}
	s.flash(c, flashSuccess, "Reminder added successfully!")
	s.redirect(c, "/reminder")
}

func (s *Server) handleViewReminder(c *gin.Context) {
	id, ok := s.parseID(c, "id")
	if !ok {
		return
	}
	reminder, err := s.reminders.Get(c.Request.Context(), currentIdentity(c), id)
	if err != nil {
		s.reminderError(c, err, "/reminder")
		return
	}
	s.render(c, http.StatusOK, "reminder_view.html", gin.H{"Title": reminder.Title, "Reminder": reminder})
}

func (s *Server) handleEditReminderForm(c *gin.Context) {
	id, ok := s.parseID(c, "id")
	if !ok {
		return
	}
	reminder, err := s.reminders.Get(c.Request.Context(), currentIdentity(c), id)
	if err != nil {
		s.reminderError(c, err, "/reminder")
		return
	}
	s.render(c, http.StatusOK, "edit_reminder.html", gin.H{"Title": "Edit reminder", "Reminder": reminder})
}

func (s *Server) handleEditReminder(c *gin.Context) {
	id, ok := s.parseID(c, "id")
	if !ok {
		return
	}
	back := fmt.Sprintf("/reminder/%d/edit", id)

	var req reminderRequest
	if err := c.ShouldBind(&req); err != nil {
		s.flash(c, flashDanger, bindMessage(err))
		s.redirect(c, back)
		return
	}
	if _, err := s.reminders.Update(c.Request.Context(), currentIdentity(c), id, req.input()); err != nil {
		s.reminderError(c, err, back)
		return
	}
	s.flash(c, flashSuccess, "Reminder updated successfully!")
	s.redirect(c, "/reminder")
}

func (s *Server) handleDeleteReminder(c *gin.Context) {
	id, ok := s.parseID(c, "id")
	if !ok {
		return
	}
	if err := s.reminders.Delete(c.Request.Context(), currentIdentity(c), id); err != nil {
		s.reminderError(c, err, "/reminder")
		return
	}
	s.flash(c, flashSuccess, "Reminder deleted successfully.")
	s.redirect(c, "/reminder")
}

func (s *Server) reminderError(c *gin.Context, err error, form string) {
	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrForbidden):
		s.flash(c, flashDanger, reminderUnavailable)
		s.redirect(c, "/reminder")
	case errors.Is(err, models.ErrValidation):
		s.flash(c, flashDanger, models.Message(err, "Reminder is invalid."))
		s.redirect(c, form)
	default:
		s.respondError(c, err)
	}
}
