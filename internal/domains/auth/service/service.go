package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"folio/config"
	"folio/infras/jwt"
	"folio/infras/otel"
	"folio/internal/domains/auth/model"
	"folio/internal/domains/auth/model/dto"
	"folio/internal/domains/auth/repository"
	inviteService "folio/internal/domains/invite/service"
	userModel "folio/internal/domains/user/model"
	userRepo "folio/internal/domains/user/repository"
	userService "folio/internal/domains/user/service"
	"folio/shared"
	"folio/shared/constant"
	"folio/shared/failure"
	"folio/shared/password"
	"folio/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const msgInvalidCredentials = "invalid email or password"

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.LoginResponse, error)
	Me(ctx context.Context, sessionID string) (dto.MeResponse, error)
	Signup(ctx context.Context, req dto.SignupRequest) (dto.LoginResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	users      userService.User
	invites    inviteService.Invite
	sessions   repository.SessionStore
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(
	userRepo userRepo.User,
	users userService.User,
	invites inviteService.Invite,
	sessions repository.SessionStore,
	cfg *config.Config,
	otel otel.Otel,
	jwt jwt.JWT,
) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		users:      users,
		invites:    invites,
		sessions:   sessions,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func equalSecret(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// bootstrapLogin reports whether the credentials are the configured admin pair. Both fields are
// always compared so the timing does not reveal which one was wrong.
func (s *serviceImpl) bootstrapLogin(email, pass string) bool {
	admin := s.cfg.App.Admin
	if admin.Email == constant.Empty || admin.Password == constant.Empty {
		return false
	}

	emailOK := equalSecret(strings.ToLower(email), strings.ToLower(admin.Email))
	passOK := equalSecret(pass, admin.Password)

	return emailOK && passOK
}

// issue opens a new session for the account and signs a token pair bound to it.
func (s *serviceImpl) issue(ctx context.Context, session model.Session) (res dto.LoginResponse, err error) {
	now := timezone.Now()

	session.ID = uuid.NewString()
	session.CreatedAt = now
	session.ExpiresAt = now.Add(time.Duration(s.cfg.JWT.RefreshExpireMin) * time.Minute)

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, jwt.Subject{
		SessionID: session.ID,
		UserID:    session.UserID,
		Email:     session.Email,
		Role:      session.Role,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err = s.sessions.Save(ctx, session); err != nil {
		log.Error().Err(err).Msg("failed to save session")

		return res, fmt.Errorf("failed to save session: %w", err)
	}

	res.FromTokenPair(tokenPair, session)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if s.bootstrapLogin(req.Email, req.Password) {
		log.Info().Msg("bootstrap admin signed in")

		return s.issue(ctx, model.Session{
			UserID:   constant.BootstrapAdminID,
			Email:    s.cfg.App.Admin.Email,
			FullName: "Administrator",
			Role:     constant.RoleSuperAdmin,
		})
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		_ = password.VerifyAbsent(req.Password)

		return res, failure.Unauthorized(msgInvalidCredentials)
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(msgInvalidCredentials)
	}

	res, err = s.issue(ctx, model.Session{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	})
	if err != nil {
		return res, err
	}

	lastLogin := map[string]any{userModel.FieldLastLogin: timezone.Now()}
	if err := s.userRepo.Update(ctx, lastLogin, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context, sessionID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Logout")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if sessionID == constant.Empty {
		return failure.Unauthorized("not signed in")
	}

	if err = s.sessions.Delete(ctx, sessionID); err != nil {
		log.Error().Err(err).Msg("failed to delete session")

		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// RefreshToken trades a refresh token for a new pair. The old session is replaced, so the
// previous tokens stop working.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(&err)

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized("invalid refresh token")
	}

	session, err := s.sessions.Take(ctx, claims.SessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return res, failure.Unauthorized("session has ended")
	}

	if err != nil {
		return res, fmt.Errorf("failed to take session: %w", err)
	}

	if session.UserID != claims.UserID {
		return res, failure.Unauthorized("invalid refresh token")
	}

	return s.issue(ctx, session)
}

func (s *serviceImpl) Me(ctx context.Context, sessionID string) (res dto.MeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Me")
	defer scope.End()
	defer scope.TraceIfError(&err)

	session, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return res, failure.Unauthorized("session has ended")
	}

	if err != nil {
		return res, fmt.Errorf("failed to get session: %w", err)
	}

	res.FromSession(session)

	return res, nil
}

// Signup redeems an invite and creates the account it was issued for, then signs the new
// member in. A failed account insert hands the invite back.
func (s *serviceImpl) Signup(ctx context.Context, req dto.SignupRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Signup")
	defer scope.End()
	defer scope.TraceIfError(&err)

	invite, err := s.invites.Validate(ctx, req.Token)
	if err != nil {
		return res, err
	}

	if invite.Email != constant.Empty && !strings.EqualFold(invite.Email, req.Email) {
		return res, failure.BadRequestFromString("this invite was issued for a different email")
	}

	userID := uuid.NewString()

	consumed, err := s.invites.Consume(ctx, req.Token, userID)
	if err != nil {
		return res, err
	}

	user, err := s.users.Create(ctx, userID, req.ToCreateUser(consumed.Role))
	if err != nil {
		if releaseErr := s.invites.Release(context.WithoutCancel(ctx), req.Token, userID); releaseErr != nil {
			log.Error().Err(releaseErr).Str("invite_id", consumed.ID).Msg("failed to release invite after signup failure")
		}

		return res, err
	}

	log.Info().Str("user_id", user.ID).Str("invite_id", consumed.ID).Msg("invited admin signed up")

	return s.issue(ctx, model.Session{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	})
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if userID == constant.BootstrapAdminID {
		return failure.BadRequestFromString("the bootstrap admin password is managed through configuration")
	}

	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found")
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err = s.userRepo.Update(ctx, shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
