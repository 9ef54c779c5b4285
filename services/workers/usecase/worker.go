package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/piresc/swastha/internal/pkg/logger"
	"github.com/piresc/swastha/internal/pkg/models"
	"github.com/piresc/swastha/internal/utils"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100

	maxNameLength  = 100
	maxFieldLength = 255
	maxAge         = 150
)

var bloodGroups = map[string]struct{}{
	"A+": {}, "A-": {}, "B+": {}, "B-": {}, "AB+": {}, "AB-": {}, "O+": {}, "O-": {},
}

// UpsertProfile validates input and stores it as the profile of userID
func (u *WorkerUC) UpsertProfile(ctx context.Context, userID, phone string, input *models.HealthProfile) (*models.HealthProfile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, &models.ValidationError{Field: "user_id", Reason: "must be a UUID"}
	}

	profile, err := normalizeProfile(input)
	if err != nil {
		return nil, err
	}
	profile.UserID = userID
	profile.Phone = phone
	profile.UpdatedAt = u.nowF().UTC()

	if err := u.workerRepo.UpsertProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	logger.InfoCtx(ctx, "Health profile saved", logger.String("user_id", userID))
	return profile, nil
}

// GetProfile returns the profile of userID or models.ErrNotFound
func (u *WorkerUC) GetProfile(ctx context.Context, userID string) (*models.HealthProfile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, &models.ValidationError{Field: "id", Reason: "must be a UUID"}
	}
	return u.workerRepo.GetProfile(ctx, userID)
}

// ListProfiles returns a page of profiles, newest first
func (u *WorkerUC) ListProfiles(ctx context.Context, limit, offset int) (*models.WorkerListResult, error) {
	if limit < 1 || limit > MaxListLimit {
		return nil, &models.ValidationError{Field: "limit", Reason: fmt.Sprintf("must be between 1 and %d", MaxListLimit)}
	}
	if offset < 0 {
		return nil, &models.ValidationError{Field: "offset", Reason: "must not be negative"}
	}

	profiles, err := u.workerRepo.ListProfiles(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	return &models.WorkerListResult{Workers: profiles, Limit: limit, Offset: offset}, nil
}

func normalizeProfile(input *models.HealthProfile) (*models.HealthProfile, error) {
	p := &models.HealthProfile{
		FullName:        utils.SanitizeString(input.FullName),
		Age:             input.Age,
		Gender:          clean(input.Gender),
		Address:         clean(input.Address),
		NativeState:     clean(input.NativeState),
		BloodGroup:      strings.ToUpper(utils.SanitizeString(input.BloodGroup)),
		MaritalStatus:   clean(input.MaritalStatus),
		Language:        clean(input.Language),
		FinancialStatus: clean(input.FinancialStatus),
		Allergies:       clean(input.Allergies),
		Conditions:      clean(input.Conditions),
	}

	switch {
	case p.FullName == "":
		return nil, &models.ValidationError{Field: "full_name", Reason: "is required"}
	case len([]rune(p.FullName)) > maxNameLength:
		return nil, &models.ValidationError{Field: "full_name", Reason: fmt.Sprintf("must be at most %d characters", maxNameLength)}
	case p.Age < 0 || p.Age > maxAge:
		return nil, &models.ValidationError{Field: "age", Reason: fmt.Sprintf("must be between 0 and %d", maxAge)}
	}

	if p.BloodGroup != "" {
		if _, ok := bloodGroups[p.BloodGroup]; !ok {
			return nil, &models.ValidationError{Field: "blood_group", Reason: "must be one of A+, A-, B+, B-, AB+, AB-, O+, O-"}
		}
	}

	return p, nil
}

func clean(s string) string {
	return utils.Truncate(utils.SanitizeString(s), maxFieldLength)
}
