package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/repos"
	"github.com/learnhub/learnhub-backend/internal/requestdata"
	"github.com/learnhub/learnhub-backend/internal/types"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*types.User, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	Refresh(ctx context.Context) (string, string, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	tokenRepo    repos.UserTokenRepo
	jwtSecretKey string
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	tokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          baseLog.With("service", "AuthService"),
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

func (as *authService) Register(ctx context.Context, input RegisterInput) (*types.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	fullName := strings.TrimSpace(input.FullName)
	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role == "" {
		role = types.RoleStudent
	}

	if email == "" {
		return nil, fmt.Errorf("an email is required to register")
	}
	if input.Password == "" {
		return nil, fmt.Errorf("a password is required to register")
	}
	if fullName == "" {
		return nil, fmt.Errorf("a full name is required to register")
	}
	if role != types.RoleStudent && role != types.RoleTeacher {
		return nil, fmt.Errorf("role must be student or teacher")
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email is already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hashed),
		FullName: fullName,
		Role:     role,
	}
	if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		as.log.Error("Register failed", "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", "", fmt.Errorf("email and password are required")
	}

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", "", fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return "", "", fmt.Errorf("invalid email or password")
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", fmt.Errorf("invalid email or password")
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stale, ftErr := as.tokenRepo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
		if ftErr != nil {
			return fmt.Errorf("check user tokens: %w", ftErr)
		}
		staleIDs := make([]uuid.UUID, 0, len(stale))
		for _, t := range stale {
			staleIDs = append(staleIDs, t.ID)
		}
		if dErr := as.tokenRepo.DeleteByIDs(ctx, tx, staleIDs); dErr != nil {
			return fmt.Errorf("delete stale tokens: %w", dErr)
		}

		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("generate access token: %w", genErr)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		userToken := &types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, cErr := as.tokenRepo.Create(ctx, tx, []*types.UserToken{userToken}); cErr != nil {
			return fmt.Errorf("create user token: %w", cErr)
		}
		return nil
	})
	if err != nil {
		as.log.Warn("Login failed", "error", err)
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) Refresh(ctx context.Context) (string, string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", fmt.Errorf("refresh token not found in request context")
	}

	var accessToken, newRefreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, ftErr := as.tokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
		if ftErr != nil {
			return fmt.Errorf("load refresh token: %w", ftErr)
		}
		if len(found) == 0 {
			return fmt.Errorf("unknown refresh token")
		}
		existing := found[0]
		if existing.ExpiresAt.Before(time.Now()) {
			if dErr := as.tokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); dErr != nil {
				return fmt.Errorf("delete expired token: %w", dErr)
			}
			return fmt.Errorf("refresh token expired")
		}

		users, uErr := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existing.UserID})
		if uErr != nil {
			return fmt.Errorf("load user for refresh: %w", uErr)
		}
		if len(users) == 0 {
			return fmt.Errorf("no user found for refresh token")
		}
		user := users[0]

		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("generate access token: %w", genErr)
		}
		accessToken = tok
		newRefreshToken = uuid.New().String()
		userToken := &types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, cErr := as.tokenRepo.Create(ctx, tx, []*types.UserToken{userToken}); cErr != nil {
			return fmt.Errorf("create user token: %w", cErr)
		}
		if dErr := as.tokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); dErr != nil {
			return fmt.Errorf("remove old refresh token: %w", dErr)
		}
		return nil
	})
	if err != nil {
		as.log.Warn("Refresh failed", "error", err)
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return fmt.Errorf("no session token in request context")
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, ftErr := as.tokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
		if ftErr != nil {
			return fmt.Errorf("load user token: %w", ftErr)
		}
		ids := make([]uuid.UUID, 0, len(found))
		for _, t := range found {
			ids = append(ids, t.ID)
		}
		if dErr := as.tokenRepo.DeleteByIDs(ctx, tx, ids); dErr != nil {
			return fmt.Errorf("delete user token: %w", dErr)
		}
		return nil
	})
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, fmt.Errorf("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", err)
	}

	// The session must still be live server-side: a signed-out token row is
	// gone even if the JWT itself has not expired yet.
	found, ftErr := as.tokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
	if ftErr != nil {
		return ctx, fmt.Errorf("load user token: %w", ftErr)
	}
	if len(found) == 0 {
		return ctx, fmt.Errorf("session revoked")
	}

	users, uErr := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if uErr != nil {
		return ctx, fmt.Errorf("load user: %w", uErr)
	}
	if len(users) == 0 {
		return ctx, fmt.Errorf("no user for token")
	}

	rd := &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: found[0].RefreshToken,
		UserID:       userID,
		Role:         users[0].Role,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}
