package api

import "strings"

// CreateUserRequest is the body of POST /users and POST /auth/registration.
type CreateUserRequest struct {
	Login    string `json:"login" validate:"required,min=3,max=10,login_chars"`
	Password string `json:"password" validate:"required,min=6,max=20"`
	Email    string `json:"email" validate:"required,email_format"`
}

// Trim implements shared.Trimmer. Passwords are taken verbatim.
func (r *CreateUserRequest) Trim() {
	r.Login = strings.TrimSpace(r.Login)
	r.Email = strings.TrimSpace(r.Email)
}

// BlogRequest is the body of POST /blogs and PUT /blogs/{id}.
type BlogRequest struct {
	Name        string `json:"name" validate:"required,max=15"`
	Description string `json:"description" validate:"required,max=500"`
	WebsiteURL  string `json:"websiteUrl" validate:"required,max=100,blog_url"`
}

// Trim implements shared.Trimmer.
func (r *BlogRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.WebsiteURL = strings.TrimSpace(r.WebsiteURL)
}

// BlogPostRequest is the body of POST /blogs/{blogId}/posts.
type BlogPostRequest struct {
	Title            string `json:"title" validate:"required,max=30"`
	ShortDescription string `json:"shortDescription" validate:"required,max=100"`
	Content          string `json:"content" validate:"required,max=1000"`
}

// Trim implements shared.Trimmer.
func (r *BlogPostRequest) Trim() {
	r.Title = strings.TrimSpace(r.Title)
	r.ShortDescription = strings.TrimSpace(r.ShortDescription)
	r.Content = strings.TrimSpace(r.Content)
}

// PostRequest is the body of POST /posts and PUT /posts/{id}.
type PostRequest struct {
	Title            string `json:"title" validate:"required,max=30"`
	ShortDescription string `json:"shortDescription" validate:"required,max=100"`
	Content          string `json:"content" validate:"required,max=1000"`
	BlogID           string `json:"blogId" validate:"required"`
}

// Trim implements shared.Trimmer.
func (r *PostRequest) Trim() {
	r.Title = strings.TrimSpace(r.Title)
	r.ShortDescription = strings.TrimSpace(r.ShortDescription)
	r.Content = strings.TrimSpace(r.Content)
	r.BlogID = strings.TrimSpace(r.BlogID)
}

// CommentRequest is the body of POST /posts/{postId}/comments and
// PUT /comments/{id}.
type CommentRequest struct {
	Content string `json:"content" validate:"required,min=20,max=300"`
}

// Trim implements shared.Trimmer.
func (r *CommentRequest) Trim() {
	r.Content = strings.TrimSpace(r.Content)
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	LoginOrEmail string `json:"loginOrEmail" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

// Trim implements shared.Trimmer.
func (r *LoginRequest) Trim() {
	r.LoginOrEmail = strings.TrimSpace(r.LoginOrEmail)
}

// ConfirmationRequest is the body of POST /auth/registration-confirmation.
type ConfirmationRequest struct {
	Code string `json:"code" validate:"required"`
}

// Trim implements shared.Trimmer.
func (r *ConfirmationRequest) Trim() {
	r.Code = strings.TrimSpace(r.Code)
}

// EmailResendingRequest is the body of POST /auth/registration-email-resending.
type EmailResendingRequest struct {
	Email string `json:"email" validate:"required,email_format"`
}

// Trim implements shared.Trimmer.
func (r *EmailResendingRequest) Trim() {
	r.Email = strings.TrimSpace(r.Email)
}

// LoginResponse defines the successful response of POST /auth/login.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}
