package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const adminSessionKey = "admin_id"

// SetAdminSession binds the authenticated admin to the cookie session so
// browser clients stay logged in without resending the JWT.
func SetAdminSession(c *gin.Context, adminID uint) error {
	session := sessions.Default(c)
	session.Set(adminSessionKey, adminID)
	return session.Save()
}

// ClearAdminSession drops the admin session at logout
func ClearAdminSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}

// AdminIDFromSession returns the admin bound to the cookie session, or 0
// when the session carries none.
func AdminIDFromSession(c *gin.Context) uint {
	session := sessions.Default(c)
	if id, ok := session.Get(adminSessionKey).(uint); ok {
		return id
	}
	return 0
}
