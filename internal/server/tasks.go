package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"edumate/internal/models"
	"edumate/internal/service"
)

type taskRequest struct {
	Title    string `form:"title" binding:"required,max=100"`
	TaskType string `form:"task_type" binding:"max=50"`
	DueDate  string `form:"due_date" binding:"required"`
	Notes    string `form:"notes"`
}

func (r taskRequest) input() service.TaskInput {
	return service.TaskInput{Title: r.Title, TaskType: r.TaskType, DueDate: r.DueDate, Notes: r.Notes}
}

// Missing and foreign tasks get the same answer so ids of other users stay opaque.
const taskUnavailable = "Task not found or access denied."

// handleIndex shows the caller's tasks on the dashboard.
func (s *Server) handleIndex(c *gin.Context) {
	s.listTasks(c, "index.html", "Dashboard")
}

// handleTaskManagement shows the caller's tasks with management actions.
func (s *Server) handleTaskManagement(c *gin.Context) {
	s.listTasks(c, "task_management.html", "Tasks")
}

func (s *Server) listTasks(c *gin.Context, page, title string) {
	tasks, err := s.tasks.List(c.Request.Context(), currentIdentity(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.render(c, http.StatusOK, page, gin.H{"Title": title, "Tasks": tasks})
}

func (s *Server) handleAddTaskForm(c *gin.Context) {
	s.render(c, http.StatusOK, "add_task.html", gin.H{"Title": "Add task"})
}

// handleAddTask inserts a new task owned by the caller.
func (s *Server) handleAddTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBind(&req); err != nil {
		s.flash(c, flashDanger, bindMessage(err))
		s.redirect(c, "/add")
		return
	}

	if _, err := s.tasks.Create(c.Request.Context(), currentIdentity(c), req.input()); err != nil {
		s.taskError(c, err, "/add")
		return
	}
	s.flash(c, flashSuccess, "Task added successfully.")
	s.redirect(c, "/tasks")
}

func (s *Server) handleViewTask(c *gin.Context) {
	id, ok := s.parseID(c, "id")
	if !ok {
		return
	}
	task, err := s.tasks.Get(c.Request.Context(), currentIdentity(c), id)
	if err != nil {
		s.taskError(c, err, "/")
		return
	}
	s.render(c, http.StatusOK, "task_view.html", gin.H{"Title": task.Title, "Task": task})
}

func (s *Server) handleEditTaskForm(c *gin.Context) {
	id, ok := s.parseID(c, "id")
	if !ok {
		return
	}
	task, err := s.tasks.Get(c.Request.Context(), currentIdentity(c), id)
	if err != nil {
		s.taskError(c, err, "/")
		return
	}
	s.render(c, http.StatusOK, "edit_task.html", gin.H{"Title": "Edit task", "Task": task})
}

// handleEditTask replaces the editable fields of an owned task.
func (s *Server) handleEditTask(c *gin.Context) {
	id, ok := s.parseID(c, "id")
	if !ok {
		return
	}
	back := fmt.Sprintf("/edit/%d", id)

	var req taskRequest
	if err := c.ShouldBind(&req); err != nil {
		s.flash(c, flashDanger, bindMessage(err))
		s.redirect(c, back)
		return
	}

	if _, err := s.tasks.Update(c.Request.Context(), currentIdentity(c), id, req.input()); err != nil {
		s.taskError(c, err, back)
		return
	}
	s.flash(c, flashSuccess, "Task updated.")
	s.redirect(c, "/")
}

// handleDeleteTask removes an owned task completely.
func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := s.parseID(c, "id")
	if !ok {
		return
	}
	if err := s.tasks.Delete(c.Request.Context(), currentIdentity(c), id); err != nil {
		s.taskError(c, err, "/")
		return
	}
	s.flash(c, flashSuccess, "Task deleted successfully.")
	s.redirect(c, "/")
}

// taskError maps service failures to a flash and a redirect; form is where
// validation failures go back to.
func (s *Server) taskError(c *gin.Context, err error, form string) {
	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrForbidden):
		s.flash(c, flashDanger, taskUnavailable)
		s.redirect(c, "/")
	case errors.Is(err, models.ErrValidation):
		s.flash(c, flashDanger, models.Message(err, "Task is invalid."))
		s.redirect(c, form)
	default:
		s.respondError(c, err)
	}
}
