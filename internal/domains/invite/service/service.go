package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"folio/config"
	"folio/infras/otel"
	"folio/internal/domains/invite/model"
	"folio/internal/domains/invite/model/dto"
	"folio/internal/domains/invite/repository"
	"folio/shared"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"
	"folio/shared/timezone"

	"github.com/rs/zerolog/log"
)

const tokenBytes = 32

type Invite interface {
	Create(ctx context.Context, req dto.CreateInviteRequest, createdBy string) (dto.InviteResponse, error)
	GetAll(ctx context.Context) ([]dto.InviteResponse, error)
	Validate(ctx context.Context, token string) (dto.ValidInviteResponse, error)
	Revoke(ctx context.Context, id string) error
	Prune(ctx context.Context) (dto.PruneResponse, error)
	Consume(ctx context.Context, token, userID string) (model.InviteToken, error)
	Release(ctx context.Context, token, userID string) error
}

type serviceImpl struct {
	repo repository.Invite
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Invite, cfg *config.Config, otel otel.Otel) Invite {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating invite token: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

func byToken(token string) gDto.FilterGroup {
	return shared.FilterByField(model.FieldToken, token, model.TableName)
}

// usable rejects invites that were already redeemed or have run out. A redeemed invite is
// reported as missing so a token cannot be probed for past use.
func usable(invite model.InviteToken, now time.Time) error {
	switch {
	case invite.ID == constant.Empty:
		return failure.NotFound("invite not found")
	case invite.Used:
		return failure.NotFound("invite not found")
	case invite.Expired(now):
		return failure.Gone("invite has expired")
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateInviteRequest, createdBy string) (res dto.InviteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invite.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	token, err := newToken()
	if err != nil {
		return res, err
	}

	hours := req.TTLHours
	if hours == 0 {
		hours = s.cfg.App.Invites.TTLHours
	}

	invite := req.ToModel(token, time.Duration(hours)*time.Hour, createdBy)

	if err = s.repo.Insert(ctx, invite); err != nil {
		log.Error().Err(err).Msg("failed to create invite")

		return res, fmt.Errorf("failed to create invite: %w", err)
	}

	log.Info().Str("invite_id", invite.ID).Str("created_by", createdBy).Msg("invite created")

	res.FromModel(invite, timezone.Now())

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.InviteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invite.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	invites, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get invites")

		return nil, err
	}

	return dto.FromModels(invites, timezone.Now()), nil
}

func (s *serviceImpl) Validate(ctx context.Context, token string) (res dto.ValidInviteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invite.Validate")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if token == constant.Empty {
		return res, failure.BadRequestFromString("invite token is required")
	}

	invite, err := s.repo.Get(ctx, byToken(token))
	if err != nil {
		log.Error().Err(err).Msg("failed to get invite")

		return res, err
	}

	if err = usable(invite, timezone.Now()); err != nil {
		return res, err
	}

	res.FromModel(invite)

	return res, nil
}

func (s *serviceImpl) Revoke(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invite.Revoke")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return err
	}

	if !exist {
		return failure.NotFound("invite not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to revoke invite")

		return fmt.Errorf("failed to revoke invite: %w", err)
	}

	return nil
}

func (s *serviceImpl) Prune(ctx context.Context) (res dto.PruneResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invite.Prune")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldUsed, Operator: gDto.FilterOperatorEq, Value: false, Table: model.TableName},
			gDto.Filter{Field: model.FieldExpiresAt, Operator: gDto.FilterOperatorLessEq, Value: timezone.Now(), Table: model.TableName},
		},
	}

	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		return res, err
	}

	if count == 0 {
		return res, nil
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to prune invites")

		return res, fmt.Errorf("failed to prune invites: %w", err)
	}

	log.Info().Int("deleted", count).Msg("pruned expired invites")

	res.Deleted = count

	return res, nil
}

// Consume marks a valid invite as used by userID. The write only matches an unused, unexpired
// row and the read-back must name userID, so a token redeems at most one account.
func (s *serviceImpl) Consume(ctx context.Context, token, userID string) (res model.InviteToken, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invite.Consume")
	defer scope.End()
	defer scope.TraceIfError(&err)

	now := timezone.Now()

	invite, err := s.repo.Get(ctx, byToken(token))
	if err != nil {
		return res, err
	}

	if err = usable(invite, now); err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldToken, Operator: gDto.FilterOperatorEq, Value: token, Table: model.TableName},
			gDto.Filter{Field: model.FieldUsed, Operator: gDto.FilterOperatorEq, Value: false, Table: model.TableName},
			gDto.Filter{Field: model.FieldExpiresAt, Operator: gDto.FilterOperatorGreaterEq, Value: now, Table: model.TableName},
		},
	}

	mark := map[string]any{
		model.FieldUsed:         true,
		model.FieldUsedBy:       userID,
		model.FieldUsedAt:       now,
		constant.FieldUpdatedAt: now,
	}

	if err = s.repo.Update(ctx, mark, filter); err != nil {
		log.Error().Err(err).Msg("failed to consume invite")

		return res, fmt.Errorf("failed to consume invite: %w", err)
	}

	res, err = s.repo.Get(ctx, byToken(token))
	if err != nil {
		return res, err
	}

	if !res.Used || res.UsedBy != userID {
		return res, failure.NotFound("invite not found")
	}

	return res, nil
}

// Release undoes Consume for userID when the account it was consumed for could not be created.
func (s *serviceImpl) Release(ctx context.Context, token, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invite.Release")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldToken, Operator: gDto.FilterOperatorEq, Value: token, Table: model.TableName},
			gDto.Filter{Field: model.FieldUsedBy, Operator: gDto.FilterOperatorEq, Value: userID, Table: model.TableName},
		},
	}

	reset := map[string]any{
		model.FieldUsed:         false,
		model.FieldUsedBy:       constant.Empty,
		model.FieldUsedAt:       nil,
		constant.FieldUpdatedAt: timezone.Now(),
	}

	if err = s.repo.Update(ctx, reset, filter); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to release invite")

		return fmt.Errorf("failed to release invite: %w", err)
	}

	return nil
}
