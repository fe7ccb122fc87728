package service

import "github.com/phrazzld/quill-api/internal/domain"

// RegisterRequest is the public sign-up payload.
type RegisterRequest struct {
	Username string `json:"username" validate:"notblank,min=5,max=20"`
	Email    string `json:"email"    validate:"notblank,email"`
	Password string `json:"password" validate:"notblank,min=6,max=72"`
	FullName string `json:"fullName" validate:"max=255"`
}

var userMessages = fieldMessages{
	"username.notblank": "Username is required",
	"username.min":      "Username must be between 5 and 20 characters",
	"username.max":      "Username must be between 5 and 20 characters",
	"email.notblank":    "Email is required",
	"email.email":       "Email must be valid",
	"password.notblank": "Password is required",
	"password.min":      "Password must be at least 6 characters",
	"password.max":      "Password must be at most 72 characters",
	"role.oneof":        "Role must be USER or ADMIN",
}

func (r RegisterRequest) Validate() domain.FieldErrors {
	return validateRequest(r, userMessages)
}

// LoginRequest carries username and password credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

func (r LoginRequest) Validate() domain.FieldErrors {
	return validateRequest(r, userMessages)
}

// UserCreateRequest is the administrative user creation payload. Role
// defaults to USER.
type UserCreateRequest struct {
	Username string `json:"username" validate:"notblank,min=5,max=20"`
	Email    string `json:"email"    validate:"notblank,email"`
	Password string `json:"password" validate:"notblank,min=6,max=72"`
	FullName string `json:"fullName" validate:"max=255"`
	Role     string `json:"role"     validate:"omitempty,oneof=USER ADMIN"`
}

func (r UserCreateRequest) Validate() domain.FieldErrors {
	return validateRequest(r, userMessages)
}

// UserUpdateRequest is a partial update; nil fields are left alone.
// Usernames cannot change.
type UserUpdateRequest struct {
	Email    *string `json:"email"    validate:"omitempty,email"`
	FullName *string `json:"fullName" validate:"omitempty,max=255"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	Role     *string `json:"role"     validate:"omitempty,oneof=USER ADMIN"`
}

func (r UserUpdateRequest) Validate() domain.FieldErrors {
	return validateRequest(r, userMessages)
}

// CategoryRequest creates a category.
type CategoryRequest struct {
	Name        string `json:"name"        validate:"notblank,min=3,max=50"`
	Description string `json:"description" validate:"max=1000"`
}

var categoryMessages = fieldMessages{
	"name.notblank": "Category name is required",
	"name.min":      "Category name must be between 3 and 50 characters",
	"name.max":      "Category name must be between 3 and 50 characters",
}

func (r CategoryRequest) Validate() domain.FieldErrors {
	return validateRequest(r, categoryMessages)
}

// CategoryUpdateRequest is a partial category update.
type CategoryUpdateRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=3,max=50"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

func (r CategoryUpdateRequest) Validate() domain.FieldErrors {
	return validateRequest(r, categoryMessages)
}

// TagRequest creates or renames a tag.
type TagRequest struct {
	Name string `json:"name" validate:"notblank,min=2,max=15"`
}

var tagMessages = fieldMessages{
	"name.notblank": "Tag name is required",
	"name.min":      "Tag name must be between 2 and 15 characters",
	"name.max":      "Tag name must be between 2 and 15 characters",
}

func (r TagRequest) Validate() domain.FieldErrors {
	return validateRequest(r, tagMessages)
}

// PostCreateRequest creates a post. Posts start as drafts unless Published
// is set.
type PostCreateRequest struct {
	Title      string  `json:"title"      validate:"notblank,min=5,max=200"`
	Slug       string  `json:"slug"       validate:"notblank,min=5,max=200"`
	Content    string  `json:"content"    validate:"notblank,min=50"`
	Published  bool    `json:"published"`
	CategoryID int64   `json:"categoryId" validate:"required,gt=0"`
	TagIDs     []int64 `json:"tagIds"     validate:"omitempty,dive,gt=0"`
}

var postMessages = fieldMessages{
	"title.notblank":      "Title is required",
	"title.min":           "Title must be between 5 and 200 characters",
	"title.max":           "Title must be between 5 and 200 characters",
	"slug.notblank":       "Slug is required",
	"slug.min":            "Slug must be between 5 and 200 characters",
	"slug.max":            "Slug must be between 5 and 200 characters",
	"content.notblank":    "Content is required",
	"content.min":         "Content must be at least 50 characters",
	"categoryId.required": "Category is required",
	"categoryId.gt":       "Category is required",
}

func (r PostCreateRequest) Validate() domain.FieldErrors {
	return validateRequest(r, postMessages)
}

// PostUpdateRequest is a partial post update. A non-nil TagIDs replaces the
// post's tags; an empty, non-nil list clears them.
type PostUpdateRequest struct {
	Title      *string `json:"title"      validate:"omitempty,min=5,max=200"`
	Slug       *string `json:"slug"       validate:"omitempty,min=5,max=200"`
	Content    *string `json:"content"    validate:"omitempty,min=50"`
	Published  *bool   `json:"published"`
	CategoryID *int64  `json:"categoryId" validate:"omitempty,gt=0"`
	TagIDs     []int64 `json:"tagIds"     validate:"omitempty,dive,gt=0"`
}

func (r PostUpdateRequest) Validate() domain.FieldErrors {
	return validateRequest(r, postMessages)
}

// CommentCreateRequest adds a comment to a post as the current principal.
type CommentCreateRequest struct {
	Content string `json:"content" validate:"notblank,min=5,max=1000"`
	PostID  int64  `json:"postId"  validate:"required,gt=0"`
}

var commentMessages = fieldMessages{
	"content.notblank": "Content is required",
	"content.min":      "Content must be between 5 and 1000 characters",
	"content.max":      "Content must be between 5 and 1000 characters",
	"postId.required":  "Post Id is required",
	"postId.gt":        "Post Id is required",
}

func (r CommentCreateRequest) Validate() domain.FieldErrors {
	return validateRequest(r, commentMessages)
}
