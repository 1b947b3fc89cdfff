package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayursync/web/internal/handler"
	"github.com/ayursync/web/internal/model"
	"github.com/ayursync/web/internal/service/account"
	"github.com/ayursync/web/internal/service/schedule"
	"github.com/ayursync/web/internal/session"
	apperrors "github.com/ayursync/web/pkg/errors"
)

type Handler struct {
	svc      *account.Service
	sessions *session.Manager
}

func NewHandler(svc *account.Service, sessions *session.Manager) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.POST("/register", h.Register)
	r.POST("/logout", h.Logout)
}

// loginView feeds the combined login/register page.
type loginView struct {
	Tab          string
	ClockOptions []string
	Form         model.RegisterForm
}

func (h *Handler) loginPage(c *gin.Context, status int, tab, errMsg, okMsg string, form model.RegisterForm) {
	page := handler.NewPage(c, "Login - AyurSync AI", "")
	page.Error = errMsg
	page.Message = okMsg
	if form.StartTime == "" {
		form.StartTime = "09:00 AM"
	}
	if form.EndTime == "" {
		form.EndTime = "05:00 PM"
	}
	page.Data = loginView{Tab: tab, ClockOptions: schedule.ClockOptions(), Form: form}
	c.HTML(status, "login.html", page)
}

func (h *Handler) LoginPage(c *gin.Context) {
	tab := c.Query("tab")
	if tab != "register" {
		tab = "login"
	}
	h.loginPage(c, http.StatusOK, tab, "", "", model.RegisterForm{Role: "individual"})
}

func (h *Handler) Login(c *gin.Context) {
	var form model.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.loginPage(c, http.StatusBadRequest, "login", "Enter a valid email and password.", "", model.RegisterForm{})
		return
	}

	user, welcomeType, err := h.svc.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		h.loginPage(c, http.StatusUnauthorized, "login", loginError(err), "", model.RegisterForm{Email: form.Email})
		return
	}

	if _, err := h.sessions.Issue(c, *user, welcomeType); err != nil {
		h.loginPage(c, http.StatusInternalServerError, "login", "Something went wrong. Please try again.", "", model.RegisterForm{Email: form.Email})
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) Register(c *gin.Context) {
	var form model.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.loginPage(c, http.StatusBadRequest, "register", "Please fill in every required field.", "", form)
		return
	}

	if err := h.svc.Register(c.Request.Context(), form); err != nil {
		h.loginPage(c, http.StatusBadRequest, "register", loginError(err), "", form)
		return
	}

	// Back to the login tab with a clean form, mirroring the original flow.
	h.loginPage(c, http.StatusOK, "login", "", "Registration Successful! Please Login.", model.RegisterForm{})
}

func (h *Handler) Logout(c *gin.Context) {
	s, err := h.sessions.Current(c)
	if err == nil && s != nil {
		_ = h.svc.Logout(c.Request.Context(), s.User.Email)
	}
	_ = h.sessions.Clear(c, s)
	c.Redirect(http.StatusSeeOther, "/")
}

// loginError surfaces backend or validation messages; transport failures
// collapse to the generic connection banner.
func loginError(err error) string {
	return apperrors.UserMessage(err, "Connection Error")
}
