package web

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/edutor/internal/session"
	"github.com/gin-gonic/gin"
)

const (
	ctxSessionStore = "session_store"
	ctxUser         = "user"
)

// withSession builds the browser's session store once per request and
// records the signed-in user, if any, for the navbar and the guards.
func (s *Server) withSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		st := session.NewStore(s.resolve(c.Writer, c.Request), s.sessionOpts)
		c.Set(ctxSessionStore, st)

		if sess, ok := st.CurrentSession(c.Request.Context()); ok {
			u := sess.User
			c.Set(ctxUser, &u)
		}
		c.Next()
	}
}

func sessionStore(c *gin.Context) *session.Store {
	return c.MustGet(ctxSessionStore).(*session.Store)
}

func currentUser(c *gin.Context) *session.UserRecord {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil
	}
	return v.(*session.UserRecord)
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
}

// requireSession sends anonymous visitors to /login before anything is
// rendered.
func requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		noStore(c)
		if currentUser(c) == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireGuest keeps signed-in users away from the login and signup forms.
func requireGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		noStore(c)
		if currentUser(c) != nil {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
