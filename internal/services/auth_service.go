package services

import (
	"context"
	"database/sql"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/devteam-creator/hushryd-app-sub001/internal/auth"
	intconfig "github.com/devteam-creator/hushryd-app-sub001/internal/config"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain/models"
	"github.com/devteam-creator/hushryd-app-sub001/internal/repositories"
	"github.com/devteam-creator/hushryd-app-sub001/internal/utils"
)

const minPasswordLen = 8

type AuthService struct {
	DB        *sql.DB
	Users     repositories.UserRepo
	Tokens    auth.Issuer
	RequestID string
}

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
}

type LoginResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

func (s AuthService) users() repositories.UserRepo {
	if s.Users.DB != nil {
		return s.Users
	}
	if s.DB != nil {
		return repositories.UserRepo{DB: s.DB}
	}
	return repositories.UserRepo{DB: intconfig.DB}
}

// Register creates an active account. Only "user" and "driver" may be
// chosen at sign-up; an empty role means "user".
func (s AuthService) Register(ctx context.Context, in RegisterInput) (models.PublicUser, error) {
	in.Name = utils.NormalizeSpace(in.Name)
	in.Email = utils.NormalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = domain.RoleUser
	}

	switch {
	case in.Name == "":
		return models.PublicUser{}, domain.ValidationError{Field: "name", Msg: "required"}
	case in.Email == "":
		return models.PublicUser{}, domain.ValidationError{Field: "email", Msg: "required"}
	case len(in.Password) < minPasswordLen:
		return models.PublicUser{}, domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	case role != domain.RoleUser && role != domain.RoleDriver:
		return models.PublicUser{}, domain.ValidationError{Field: "role", Msg: "must be user or driver"}
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return models.PublicUser{}, domain.ValidationError{Field: "email", Msg: "invalid address"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.PublicUser{}, domain.InternalError{Msg: "hash password", Err: err}
	}
	u := models.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         role,
		Status:       "active",
	}
	if err := s.users().Create(ctx, u); err != nil {
		return models.PublicUser{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "register", "user_id="+u.ID+" role="+u.Role)
	return u.ToPublic(), nil
}

// Login checks the password and issues an access token. Unknown emails and
// wrong passwords return the same UnauthorizedError.
func (s AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	bad := domain.UnauthorizedError{Msg: "invalid email or password"}

	u, err := s.users().GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if domain.IsNotFound(err) {
			return LoginResult{}, bad
		}
		return LoginResult{}, err
	}
	if u.Status != "active" {
		return LoginResult{}, domain.ForbiddenError{Msg: "account is " + u.Status}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, bad
	}

	token, err := s.Tokens.Issue(u.ID, u.Role)
	if err != nil {
		return LoginResult{}, domain.InternalError{Msg: "issue token", Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "login", "user_id="+u.ID)
	return LoginResult{Token: token, User: u.ToPublic()}, nil
}

// Profile returns the public view of userID.
func (s AuthService) Profile(ctx context.Context, userID string) (models.PublicUser, error) {
	u, err := s.users().GetByID(ctx, strings.TrimSpace(userID))
	if err != nil {
		return models.PublicUser{}, err
	}
	return u.ToPublic(), nil
}
