package server

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"edumate/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var fieldLabels = map[string]string{
	"Name":         "Name",
	"StudentID":    "Student ID",
	"Email":        "Email",
	"Password":     "Password",
	"Confirm":      "Password confirmation",
	"Token":        "Reset token",
	"Title":        "Title",
	"TaskType":     "Task type",
	"DueDate":      "Due date",
	"ReminderTime": "Reminder time",
}

func loadTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"showTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
		"inputTime": func(t time.Time) string {
			return t.Format(models.ReminderTimeLayout)
		},
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// render executes a page template with the identity and pending flashes attached.
func (s *Server) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Identity"] = currentIdentity(c)
	data["Flashes"] = s.takeFlashes(c)
	c.HTML(status, name, data)
}

// renderStatus renders the error page with a status code and a short message.
func (s *Server) renderStatus(c *gin.Context, status int, message string) {
	s.render(c, status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
}

// bindMessage turns a form binding failure into a sentence for the user.
func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "The form could not be read."
	}
	fe := verrs[0]
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "email":
		return label + " must be a valid email address."
	case "eqfield":
		return "Passwords do not match."
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	default:
		return label + " is invalid."
	}
}
