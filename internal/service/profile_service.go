package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/cse-sg/absence-service/internal/domain"
	"github.com/cse-sg/absence-service/internal/store"
	apperrors "github.com/cse-sg/absence-service/pkg/util/errorutil"
)

// ProfileService changes a staff member's PIN. PINs are stored and compared
// literally; see the data model.
type ProfileService struct {
	staff  store.StaffStore
	logger *zap.Logger
}

// NewProfileService constructs the service.
func NewProfileService(staff store.StaffStore, logger *zap.Logger) *ProfileService {
	return &ProfileService{staff: staff, logger: logger}
}

// ChangePin validates and applies a PIN change, returning the updated
// record so the caller can refresh its in-memory session. Any validation
// failure leaves the store untouched.
func (s *ProfileService) ChangePin(ctx context.Context, user *domain.StaffRecord, currentPin, newPin, confirmPin string) (*domain.StaffRecord, error) {
	if currentPin != user.PIN {
		return nil, apperrors.NewWrongCurrentPin()
	}
	if !domain.ValidPIN(newPin) {
		return nil, apperrors.NewInvalidNewPin()
	}
	if newPin != confirmPin {
		return nil, apperrors.NewPinMismatch()
	}

	if err := s.staff.Update(ctx, user.ID, map[string]any{"pin": newPin}); err != nil {
		return nil, apperrors.MapError(err)
	}

	updated := *user
	updated.PIN = newPin
	s.logger.Info("pin changed", zap.String("staff_id", user.ID))
	return &updated, nil
}
