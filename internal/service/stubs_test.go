package service

import (
	"context"
	"errors"
	"testing"

	"qubeia/internal/models"
	"qubeia/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn             func(context.Context, uint) (*models.User, error)
	getByEmailFn          func(context.Context, string) (*models.User, error)
	getByUsernameFn       func(context.Context, string) (*models.User, error)
	createFn              func(context.Context, *models.User) error
	listFn                func(context.Context, int, int) ([]models.User, error)
	updateRoleFn          func(context.Context, uint, models.Role) error
	incrementActivityFn   func(context.Context, uint, repository.ActivityKind) (int, int, error)
	adjustWarningPointsFn func(context.Context, uint, int) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) UpdateRole(ctx context.Context, id uint, role models.Role) error {
	return s.updateRoleFn(ctx, id, role)
}
func (s *userRepoStub) IncrementActivity(ctx context.Context, id uint, kind repository.ActivityKind) (int, int, error) {
	return s.incrementActivityFn(ctx, id, kind)
}
func (s *userRepoStub) AdjustWarningPoints(ctx context.Context, id uint, delta int) error {
	return s.adjustWarningPointsFn(ctx, id, delta)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleUser}, nil
		},
		getByEmailFn:          func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn:       func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:              func(_ context.Context, _ *models.User) error { return nil },
		listFn:                func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
		updateRoleFn:          func(_ context.Context, _ uint, _ models.Role) error { return nil },
		incrementActivityFn:   func(_ context.Context, _ uint, _ repository.ActivityKind) (int, int, error) { return 1, 0, nil },
		adjustWarningPointsFn: func(_ context.Context, _ uint, _ int) error { return nil },
	}
}

// contentRepoStub is a stub for repository.ContentRepository.
type contentRepoStub struct {
	createFn          func(context.Context, *models.ContentItem) error
	getByIDFn         func(context.Context, uint) (*models.ContentItem, error)
	listBySectionFn   func(context.Context, string) ([]*models.ContentItem, error)
	updateBodyFn      func(context.Context, uint, uint, string, string) (bool, error)
	markDeletedFn     func(context.Context, uint, uint) (bool, error)
	restoreFn         func(context.Context, uint) (bool, error)
	setReportStatusFn func(context.Context, uint, models.ReportStatus) (bool, error)
}

func (s *contentRepoStub) Create(ctx context.Context, item *models.ContentItem) error {
	return s.createFn(ctx, item)
}
func (s *contentRepoStub) GetByID(ctx context.Context, id uint) (*models.ContentItem, error) {
	return s.getByIDFn(ctx, id)
}
func (s *contentRepoStub) ListBySection(ctx context.Context, section string) ([]*models.ContentItem, error) {
	return s.listBySectionFn(ctx, section)
}
func (s *contentRepoStub) UpdateBody(ctx context.Context, id, authorID uint, title, body string) (bool, error) {
	return s.updateBodyFn(ctx, id, authorID, title, body)
}
func (s *contentRepoStub) MarkDeleted(ctx context.Context, id, deletedBy uint) (bool, error) {
	return s.markDeletedFn(ctx, id, deletedBy)
}
func (s *contentRepoStub) Restore(ctx context.Context, id uint) (bool, error) {
	return s.restoreFn(ctx, id)
}
func (s *contentRepoStub) SetReportStatus(ctx context.Context, id uint, status models.ReportStatus) (bool, error) {
	return s.setReportStatusFn(ctx, id, status)
}

func noopContentRepo() *contentRepoStub {
	return &contentRepoStub{
		createFn: func(_ context.Context, _ *models.ContentItem) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.ContentItem, error) {
			return &models.ContentItem{ID: id, Section: "general", Status: models.ContentStatusActive}, nil
		},
		listBySectionFn:   func(_ context.Context, _ string) ([]*models.ContentItem, error) { return nil, nil },
		updateBodyFn:      func(_ context.Context, _, _ uint, _, _ string) (bool, error) { return true, nil },
		markDeletedFn:     func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		restoreFn:         func(_ context.Context, _ uint) (bool, error) { return true, nil },
		setReportStatusFn: func(_ context.Context, _ uint, _ models.ReportStatus) (bool, error) { return true, nil },
	}
}

// punishmentRepoStub is a stub for repository.PunishmentRepository.
type punishmentRepoStub struct {
	createFn     func(context.Context, *models.Punishment) error
	getByIDFn    func(context.Context, uint) (*models.Punishment, error)
	listByUserFn func(context.Context, uint) ([]*models.Punishment, error)
	deleteFn     func(context.Context, uint) (bool, error)
}

func (s *punishmentRepoStub) Create(ctx context.Context, p *models.Punishment) error {
	return s.createFn(ctx, p)
}
func (s *punishmentRepoStub) GetByID(ctx context.Context, id uint) (*models.Punishment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *punishmentRepoStub) ListByUser(ctx context.Context, userID uint) ([]*models.Punishment, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *punishmentRepoStub) Delete(ctx context.Context, id uint) (bool, error) {
	return s.deleteFn(ctx, id)
}

func noopPunishmentRepo() *punishmentRepoStub {
	return &punishmentRepoStub{
		createFn: func(_ context.Context, _ *models.Punishment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Punishment, error) {
			return &models.Punishment{ID: id, UserID: 1}, nil
		},
		listByUserFn: func(_ context.Context, _ uint) ([]*models.Punishment, error) { return nil, nil },
		deleteFn:     func(_ context.Context, _ uint) (bool, error) { return true, nil },
	}
}

// appealRepoStub is a stub for repository.AppealRepository.
type appealRepoStub struct {
	createFn            func(context.Context, *models.Appeal) error
	getByIDFn           func(context.Context, uint) (*models.Appeal, error)
	listFn              func(context.Context, int, int) ([]*models.Appeal, error)
	listByUserFn        func(context.Context, uint) ([]*models.Appeal, error)
	decideFn            func(context.Context, uint, models.AppealDecision, uint) (bool, error)
	hasBlockingAppealFn func(context.Context, uint, uint, ...models.AppealDecision) (bool, error)
}

func (s *appealRepoStub) Create(ctx context.Context, a *models.Appeal) error {
	return s.createFn(ctx, a)
}
func (s *appealRepoStub) GetByID(ctx context.Context, id uint) (*models.Appeal, error) {
	return s.getByIDFn(ctx, id)
}
func (s *appealRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Appeal, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *appealRepoStub) ListByUser(ctx context.Context, userID uint) ([]*models.Appeal, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *appealRepoStub) Decide(ctx context.Context, id uint, outcome models.AppealDecision, decidedBy uint) (bool, error) {
	return s.decideFn(ctx, id, outcome, decidedBy)
}
func (s *appealRepoStub) HasBlockingAppeal(ctx context.Context, userID, punishmentID uint, decisions ...models.AppealDecision) (bool, error) {
	return s.hasBlockingAppealFn(ctx, userID, punishmentID, decisions...)
}

func noopAppealRepo() *appealRepoStub {
	return &appealRepoStub{
		createFn: func(_ context.Context, _ *models.Appeal) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Appeal, error) {
			return &models.Appeal{ID: id, PunishmentID: 1, UserID: 1, Decision: models.AppealPending}, nil
		},
		listFn:       func(_ context.Context, _, _ int) ([]*models.Appeal, error) { return nil, nil },
		listByUserFn: func(_ context.Context, _ uint) ([]*models.Appeal, error) { return nil, nil },
		decideFn: func(_ context.Context, _ uint, _ models.AppealDecision, _ uint) (bool, error) {
			return true, nil
		},
		hasBlockingAppealFn: func(_ context.Context, _, _ uint, _ ...models.AppealDecision) (bool, error) {
			return false, nil
		},
	}
}

// messageRepoStub is a stub for repository.MessageRepository.
type messageRepoStub struct {
	createFn       func(context.Context, *models.DirectMessage) error
	conversationFn func(context.Context, uint, uint, int, int) ([]*models.DirectMessage, error)
}

func (s *messageRepoStub) Create(ctx context.Context, m *models.DirectMessage) error {
	return s.createFn(ctx, m)
}
func (s *messageRepoStub) Conversation(ctx context.Context, a, b uint, limit, offset int) ([]*models.DirectMessage, error) {
	return s.conversationFn(ctx, a, b, limit, offset)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn: func(_ context.Context, _ *models.DirectMessage) error { return nil },
		conversationFn: func(_ context.Context, _, _ uint, _, _ int) ([]*models.DirectMessage, error) {
			return nil, nil
		},
	}
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertAuthorizationDenied(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeAuthorizationDenied)
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeConflict)
}
