package service

import (
	"context"
	"fmt"
	"strings"

	"folio/config"
	"folio/infras/otel"
	"folio/internal/domains/user/model"
	"folio/internal/domains/user/model/dto"
	"folio/internal/domains/user/repository"
	"folio/shared"
	"folio/shared/cache"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"
	"folio/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:get_all"
)

// Actor is the signed-in account performing a team change.
type Actor struct {
	ID   string
	Role string
}

type User interface {
	Create(ctx context.Context, id string, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context) (dto.GetUsersResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest, id string) error
	Delete(ctx context.Context, id string, actor Actor) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.Cache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.Cache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete user from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
	}()
}

func (s *serviceImpl) bootstrapConfigured() bool {
	return s.cfg.App.Admin.Email != constant.Empty && s.cfg.App.Admin.Password != constant.Empty
}

// Create stores a new admin account under id. Emails are unique case-insensitively and the
// bootstrap admin's address is reserved.
func (s *serviceImpl) Create(ctx context.Context, id string, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	email := strings.ToLower(req.Email)

	if s.bootstrapConfigured() && strings.EqualFold(email, s.cfg.App.Admin.Email) {
		return res, failure.Conflict("email already registered")
	}

	exists, err := s.repo.EmailTaken(ctx, email)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("email already registered")
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(id, hashedPassword)

	if err = s.repo.Insert(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = s.cache.Get(ctx, cacheGetAllUser, &res); err == nil {
		log.Info().Str("cacheKey", cacheGetAllUser).Msg("cache hit for users")

		return res, nil
	}

	users, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	if s.bootstrapConfigured() {
		users = append([]model.User{dto.Bootstrap(s.cfg.App.Admin.Email)}, users...)
	}

	res.FromModels(users)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetAllUser, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if id == constant.BootstrapAdminID && s.bootstrapConfigured() {
		res.FromModel(dto.Bootstrap(s.cfg.App.Admin.Email))

		return res, nil
	}

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found")
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.UpdateProfile")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if id == constant.BootstrapAdminID {
		return failure.BadRequestFromString("the bootstrap admin is managed through configuration")
	}

	if req == (dto.UpdateProfileRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return err
	}

	if !exist {
		return failure.NotFound("user not found")
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req), filter); err != nil {
		log.Error().Err(err).Msg("failed to update user")

		return fmt.Errorf("failed to update user: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete removes a team member. Only a superadmin may do it and nobody can remove themselves
// or the bootstrap admin.
func (s *serviceImpl) Delete(ctx context.Context, id string, actor Actor) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	switch {
	case actor.Role != constant.RoleSuperAdmin:
		return failure.Forbidden("only a superadmin can remove team members")
	case id == actor.ID:
		return failure.BadRequestFromString("you cannot remove your own account")
	case id == constant.BootstrapAdminID:
		return failure.BadRequestFromString("the bootstrap admin cannot be removed")
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFound("user not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	log.Info().Str("user_id", id).Str("removed_by", actor.ID).Msg("team member removed")

	s.invalidate(ctx, id)

	return nil
}
