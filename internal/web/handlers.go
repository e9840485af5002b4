package web

import (
	"net/http"

	"github.com/dmitrijs2005/edutor/internal/accounts"
	"github.com/dmitrijs2005/edutor/internal/content"
	"github.com/dmitrijs2005/edutor/internal/session"
	"github.com/gin-gonic/gin"
)

// HTMLData is the view model shared by all pages.
type HTMLData struct {
	Title     string
	Path      string
	User      *session.UserRecord
	FormError string
	FormData  map[string]string

	Features  []content.Feature
	Tutors    []content.Tutor
	Cards     []content.Card
	Dashboard content.Dashboard
	Tabs      []content.AccountTab
	Tab       string
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type signupForm struct {
	Name            string `form:"name"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
}

func (s *Server) page(c *gin.Context, status int, name string, data *HTMLData) {
	data.Path = c.Request.URL.Path
	if data.User == nil {
		data.User = currentUser(c)
	}
	if data.Features == nil {
		data.Features = content.Features()
	}
	if data.Tutors == nil {
		data.Tutors = content.Tutors()
	}
	c.HTML(status, name, data)
}

func (s *Server) serverError(c *gin.Context, err error) {
	s.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
	s.page(c, http.StatusInternalServerError, pageError, &HTMLData{
		Title:     "Something went wrong",
		FormError: "An error occurred. Please try again.",
	})
}

func (s *Server) notFound(c *gin.Context) {
	s.page(c, http.StatusNotFound, pageError, &HTMLData{
		Title:     "Page not found",
		FormError: "The page you are looking for does not exist.",
	})
}

func (s *Server) home(c *gin.Context) {
	s.page(c, http.StatusOK, pageHome, &HTMLData{
		Title: "Edutor",
		Cards: s.catalog.Carousel(c.Request.Context()),
	})
}

func (s *Server) loginForm(c *gin.Context) {
	s.page(c, http.StatusOK, pageLogin, &HTMLData{Title: "Login"})
}

func (s *Server) login(c *gin.Context) {
	var f loginForm
	if err := c.ShouldBind(&f); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	res, err := s.accounts.Login(c.Request.Context(), sessionStore(c), accounts.LoginInput{
		Email:    f.Email,
		Password: f.Password,
	})
	if err != nil {
		if ve, ok := accounts.IsValidation(err); ok {
			s.page(c, http.StatusOK, pageLogin, &HTMLData{
				Title:     "Login",
				FormError: ve.Message,
				FormData:  map[string]string{"email": f.Email},
			})
			return
		}
		s.serverError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, res.Redirect)
}

func (s *Server) signupForm(c *gin.Context) {
	s.page(c, http.StatusOK, pageSignup, &HTMLData{Title: "Sign up"})
}

func (s *Server) signup(c *gin.Context) {
	var f signupForm
	if err := c.ShouldBind(&f); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	res, err := s.accounts.Signup(c.Request.Context(), sessionStore(c), accounts.SignupInput{
		Name:            f.Name,
		Email:           f.Email,
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
	})
	if err != nil {
		if ve, ok := accounts.IsValidation(err); ok {
			s.page(c, http.StatusOK, pageSignup, &HTMLData{
				Title:     "Sign up",
				FormError: ve.Message,
				FormData:  map[string]string{"name": f.Name, "email": f.Email},
			})
			return
		}
		s.serverError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, res.Redirect)
}

func (s *Server) logout(c *gin.Context) {
	noStore(c)
	if err := s.accounts.Logout(c.Request.Context(), sessionStore(c)); err != nil {
		s.serverError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

func (s *Server) dashboard(c *gin.Context) {
	s.page(c, http.StatusOK, pageDashboard, &HTMLData{
		Title:     "Dashboard",
		Dashboard: content.DashboardData(),
	})
}

func (s *Server) account(c *gin.Context) {
	s.page(c, http.StatusOK, pageAccount, &HTMLData{
		Title: "Account",
		Tabs:  content.AccountTabs(),
		Tab:   content.ResolveTab(c.Query("tab")),
	})
}

func (s *Server) healthz(c *gin.Context) {
	if s.ping != nil {
		if err := s.ping(c.Request.Context()); err != nil {
			s.logger.Warn(c.Request.Context(), "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
