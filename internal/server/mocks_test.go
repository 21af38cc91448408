package server

import (
	"context"

	"qubeia/internal/authz"
	"qubeia/internal/config"
	"qubeia/internal/featureflags"
	"qubeia/internal/models"
	"qubeia/internal/repository"
	"qubeia/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uint, role models.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementActivity(ctx context.Context, id uint, kind repository.ActivityKind) (int, int, error) {
	args := m.Called(ctx, id, kind)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) AdjustWarningPoints(ctx context.Context, id uint, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

// MockContentRepository is a mock of the ContentRepository interface
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) Create(ctx context.Context, item *models.ContentItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockContentRepository) GetByID(ctx context.Context, id uint) (*models.ContentItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentItem), args.Error(1)
}

func (m *MockContentRepository) ListBySection(ctx context.Context, section string) ([]*models.ContentItem, error) {
	args := m.Called(ctx, section)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContentItem), args.Error(1)
}

func (m *MockContentRepository) UpdateBody(ctx context.Context, id, authorID uint, title, body string) (bool, error) {
	args := m.Called(ctx, id, authorID, title, body)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentRepository) MarkDeleted(ctx context.Context, id, deletedBy uint) (bool, error) {
	args := m.Called(ctx, id, deletedBy)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentRepository) Restore(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentRepository) SetReportStatus(ctx context.Context, id uint, status models.ReportStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

// MockPunishmentRepository is a mock of the PunishmentRepository interface
type MockPunishmentRepository struct {
	mock.Mock
}

func (m *MockPunishmentRepository) Create(ctx context.Context, punishment *models.Punishment) error {
	args := m.Called(ctx, punishment)
	return args.Error(0)
}

func (m *MockPunishmentRepository) GetByID(ctx context.Context, id uint) (*models.Punishment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Punishment), args.Error(1)
}

func (m *MockPunishmentRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Punishment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Punishment), args.Error(1)
}

func (m *MockPunishmentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockAppealRepository is a mock of the AppealRepository interface
type MockAppealRepository struct {
	mock.Mock
}

func (m *MockAppealRepository) Create(ctx context.Context, appeal *models.Appeal) error {
	args := m.Called(ctx, appeal)
	return args.Error(0)
}

func (m *MockAppealRepository) GetByID(ctx context.Context, id uint) (*models.Appeal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appeal), args.Error(1)
}

func (m *MockAppealRepository) List(ctx context.Context, limit, offset int) ([]*models.Appeal, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Appeal), args.Error(1)
}

func (m *MockAppealRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Appeal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Appeal), args.Error(1)
}

func (m *MockAppealRepository) Decide(ctx context.Context, id uint, outcome models.AppealDecision, decidedBy uint) (bool, error) {
	args := m.Called(ctx, id, outcome, decidedBy)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppealRepository) HasBlockingAppeal(ctx context.Context, userID, punishmentID uint, decisions ...models.AppealDecision) (bool, error) {
	args := m.Called(ctx, userID, punishmentID, decisions)
	return args.Bool(0), args.Error(1)
}

// MockMessageRepository is a mock of the MessageRepository interface
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *models.DirectMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) Conversation(ctx context.Context, userA, userB uint, limit, offset int) ([]*models.DirectMessage, error) {
	args := m.Called(ctx, userA, userB, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DirectMessage), args.Error(1)
}

// testMocks bundles one mock per repository.
type testMocks struct {
	users       *MockUserRepository
	content     *MockContentRepository
	punishments *MockPunishmentRepository
	appeals     *MockAppealRepository
	messages    *MockMessageRepository
}

// newTestServer builds a Server over mock repositories with real services
// wired on top, mirroring NewServerWithDeps without DB or Redis.
func newTestServer() (*Server, *testMocks) {
	m := &testMocks{
		users:       new(MockUserRepository),
		content:     new(MockContentRepository),
		punishments: new(MockPunishmentRepository),
		appeals:     new(MockAppealRepository),
		messages:    new(MockMessageRepository),
	}

	policy := authz.NewSectionPolicy()
	s := &Server{
		config:         &config.Config{JWTSecret: "test_secret"},
		policy:         policy,
		featureFlags:   featureflags.NewManager("announcements=on"),
		userRepo:       m.users,
		contentRepo:    m.content,
		punishmentRepo: m.punishments,
		appealRepo:     m.appeals,
		messageRepo:    m.messages,
	}
	s.reputationService = service.NewReputationService(m.users)
	s.userService = service.NewUserService(m.users, nil)
	s.contentService = service.NewContentService(m.content, m.users, policy)
	s.punishmentService = service.NewPunishmentService(m.punishments, m.users)
	s.appealService = service.NewAppealService(m.appeals, m.punishments, m.users, false)
	s.messageService = service.NewMessageService(m.messages, m.users, s.reputationService, nil)
	return s, m
}

// newAuthedApp returns a Fiber app with userID injected into Locals, the way
// AuthRequired would after validating a token.
func newAuthedApp(userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	return app
}
