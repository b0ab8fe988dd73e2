package handler

import (
	"net/http"
	"strings"

	"media-uploader/backend/common"
	apperrors "media-uploader/backend/common/errors"
	"media-uploader/backend/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type credentialsForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func bindCredentials(c *gin.Context) (credentialsForm, error) {
	form := credentialsForm{
		Username: strings.TrimSpace(c.PostForm("username")),
		Password: c.PostForm("password"),
	}
	if err := common.Validate.Struct(&form); err != nil {
		return form, apperrors.New(apperrors.ErrEmptyCredentials, "Username and password cannot be empty.")
	}
	return form, nil
}

func SetupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "setup.html", gin.H{"Flashes": takeFlashes(c)})
}

// Setup creates or resets the admin user. Deliberately unauthenticated to
// match the original bootstrap flow; an overwrite of an existing user is
// logged as a security event since any visitor can trigger it.
func Setup(c *gin.Context) {
	form, err := bindCredentials(c)
	if err != nil {
		setFlash(c, err.Error())
		c.Redirect(http.StatusFound, "/setup")
		return
	}

	hashed, err := common.Password2Hash(form.Password)
	if err != nil {
		setFlash(c, "Failed to process password.")
		c.Redirect(http.StatusFound, "/setup")
		return
	}

	if model.IsUsernameTaken(form.Username) {
		common.SysError("setup overwrote credentials of existing user: " + form.Username)
	}
	if _, err := model.ReplaceUser(form.Username, hashed); err != nil {
		setFlash(c, "Failed to create user: "+err.Error())
		c.Redirect(http.StatusFound, "/setup")
		return
	}

	setFlash(c, "Admin '"+form.Username+"' created! You can now log in.")
	c.Redirect(http.StatusFound, "/login")
}

func RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Flashes": takeFlashes(c)})
}

func Register(c *gin.Context) {
	form, err := bindCredentials(c)
	if err != nil {
		setFlash(c, err.Error())
		c.Redirect(http.StatusFound, "/register")
		return
	}

	if model.IsUsernameTaken(form.Username) {
		setFlash(c, "That username is already taken.")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	hashed, err := common.Password2Hash(form.Password)
	if err != nil {
		setFlash(c, "Failed to process password.")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	user := &model.User{Username: form.Username, Password: hashed}
	if err := user.Insert(); err != nil {
		setFlash(c, "Failed to create user: "+err.Error())
		c.Redirect(http.StatusFound, "/register")
		return
	}

	setFlash(c, "User '"+form.Username+"' created successfully. You can now log in.")
	c.Redirect(http.StatusFound, "/login")
}

// redirectToSetupIfEmpty sends visitors to /setup while no user exists yet.
func redirectToSetupIfEmpty(c *gin.Context) bool {
	count, err := model.CountUsers()
	if err == nil && count == 0 {
		c.Redirect(http.StatusFound, "/setup")
		return true
	}
	return false
}

func LoginPage(c *gin.Context) {
	if redirectToSetupIfEmpty(c) {
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{"Flashes": takeFlashes(c)})
}

func Login(c *gin.Context) {
	if redirectToSetupIfEmpty(c) {
		return
	}

	form, err := bindCredentials(c)
	if err != nil {
		setFlash(c, "Invalid credentials")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := model.CheckCredentials(form.Username, form.Password)
	if err != nil {
		setFlash(c, "Invalid credentials")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	session := sessions.Default(c)
	session.Set("id", user.Id)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		setFlash(c, "Failed to save session: "+err.Error())
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.Redirect(http.StatusFound, "/manage")
}

func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/gallery")
}
