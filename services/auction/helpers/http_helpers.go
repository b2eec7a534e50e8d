package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	currentUserKey = "currentUser"

	// FormErrorKey holds errors that belong to the whole form rather than one field
	FormErrorKey = "__all__"
)

// field errors are keyed by the form tag, so the template can look them up by input name.
// notblank rejects whitespace-only text that required lets through.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	}
}

// FieldErrors turns a binding error into one human readable message per form field
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out[FormErrorKey] = "Enter valid values. Amounts must be numbers."
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "url":
		return "Enter a valid URL."
	case "email":
		return "Enter a valid email address."
	default:
		return "Enter a valid value."
	}
}

// HandleBindError logs a binding failure and returns the per-field messages for re-rendering the form
func HandleBindError(c *gin.Context, handlerName string, err error) map[string]string {
	utils.Warn(handlerName+": binding error", map[string]any{
		"path":  c.Request.URL.Path,
		"error": err.Error(),
	})
	return FieldErrors(err)
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrListingNotFound):
		return http.StatusNotFound, "Listing not found."
	case errors.Is(err, auctionerrors.ErrCategoryNotFound):
		return http.StatusNotFound, "Category not found."
	case errors.Is(err, auctionerrors.ErrUserNotFound):
		return http.StatusNotFound, "User not found."
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "Enter a valid bid amount."
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "Your bid must be higher than the current highest bid."
	case errors.Is(err, auctionerrors.ErrListingClosed):
		return http.StatusConflict, "This auction is closed."
	case errors.Is(err, auctionerrors.ErrInvalidImageURL):
		return http.StatusBadRequest, "Enter a valid URL."
	case errors.Is(err, auctionerrors.ErrInvalidListing):
		return http.StatusBadRequest, "Invalid listing details."
	case errors.Is(err, auctionerrors.ErrInvalidCategory):
		return http.StatusBadRequest, "Invalid category."
	case errors.Is(err, auctionerrors.ErrInvalidComment):
		return http.StatusBadRequest, "Comments must be between 1 and 300 characters."
	case errors.Is(err, auctionerrors.ErrNotListingAuthor):
		return http.StatusForbidden, "Only the author can close this listing."
	case errors.Is(err, auctionerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username and/or password."
	case errors.Is(err, auctionerrors.ErrPasswordMismatch):
		return http.StatusBadRequest, "Passwords must match."
	case errors.Is(err, auctionerrors.ErrDuplicateUsername):
		return http.StatusConflict, "Username already taken."
	case errors.Is(err, auctionerrors.ErrInvalidUser):
		return http.StatusBadRequest, "Invalid registration details."
	case errors.Is(err, auctionerrors.ErrInvalidSession):
		return http.StatusUnauthorized, "Please log in again."
	default:
		return http.StatusInternalServerError, "Something went wrong. Please try again later."
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// SetCurrentUser attaches the authenticated user to the request
func SetCurrentUser(c *gin.Context, user models.User) {
	c.Set(currentUserKey, user)
}

// CurrentUser returns the authenticated user, if any
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// CurrentUserID returns the authenticated user's id or an empty string
func CurrentUserID(c *gin.Context) string {
	user, _ := CurrentUser(c)
	return user.UserID
}

// Render renders a page, exposing the signed-in user to the layout
func Render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user, ok := CurrentUser(c); ok {
		data["CurrentUser"] = user
	}
	utils.HTMLResponse(c, status, page, data)
}

// RenderError renders the error page for err and logs it
func RenderError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["status"] = status
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
	} else {
		utils.Warn(handlerName+": request rejected", fields)
	}
	Render(c, status, "error.html", gin.H{"Status": status, "Message": message})
}

// SafeNext accepts only same-site absolute paths as a post-login destination
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return next
}

// LoginURL builds the login redirect target for a protected page
func LoginURL(next string) string {
	if next = SafeNext(next); next == "" {
		return "/login/"
	}
	return "/login/?next=" + url.QueryEscape(next)
}

// LogRejected logs a request the service refused for a reason the user can fix
func LogRejected(c *gin.Context, handlerName string, err error) {
	utils.Warn(handlerName+": request rejected", map[string]any{
		"path":  c.Request.URL.Path,
		"error": err.Error(),
	})
}
