// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"qubeia/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// spreadCreatedAt returns a timestamp scattered over the recent past so
// listings look lived-in rather than all stamped at seed time.
func (f *Factory) spreadCreatedAt() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

// CreateUser persists a user with fake but plausible data. All seed users
// share the password "password123".
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), f.rng.Intn(10000)),
		Email:    gofakeit.Email(),
		Password: string(hash),
		Role:     models.RoleUser,
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateContentItem persists an item for the given author in a section.
// Triage sections get a pending report status, matching what the API does
// on create.
func (f *Factory) CreateContentItem(author *models.User, section string, overrides ...func(*models.ContentItem)) (*models.ContentItem, error) {
	item := &models.ContentItem{
		Section:   section,
		Title:     gofakeit.Sentence(5),
		Body:      gofakeit.Paragraph(1, 3, 5, "\n"),
		AuthorID:  author.ID,
		Status:    models.ContentStatusActive,
		CreatedAt: f.spreadCreatedAt(),
	}
	for _, override := range overrides {
		override(item)
	}

	if err := f.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// CreatePunishment persists a punishment and bumps the target's warning
// points the way the service layer would.
func (f *Factory) CreatePunishment(target *models.User, issuedBy uint, points int) (*models.Punishment, error) {
	punishment := &models.Punishment{
		UserID:        target.ID,
		Reason:        gofakeit.Sentence(8),
		WarningPoints: points,
		IssuedBy:      issuedBy,
	}
	if err := f.db.Create(punishment).Error; err != nil {
		return nil, err
	}
	err := f.db.Model(&models.User{}).Where("id = ?", target.ID).
		Update("warning_points", gorm.Expr("warning_points + ?", points)).Error
	return punishment, err
}

// CreateAppeal persists an appeal against a punishment.
func (f *Factory) CreateAppeal(punishment *models.Punishment, decision models.AppealDecision, decidedBy *uint) (*models.Appeal, error) {
	appeal := &models.Appeal{
		PunishmentID: punishment.ID,
		UserID:       punishment.UserID,
		Reason:       gofakeit.Paragraph(1, 2, 8, " "),
		Decision:     decision,
	}
	if decision != models.AppealPending && decidedBy != nil {
		now := time.Now()
		appeal.DecidedBy = decidedBy
		appeal.DecidedAt = &now
	}
	if err := f.db.Create(appeal).Error; err != nil {
		return nil, err
	}
	return appeal, nil
}

// CreateDirectMessage persists a DM between two users.
func (f *Factory) CreateDirectMessage(sender, recipient *models.User, overrides ...func(*models.DirectMessage)) (*models.DirectMessage, error) {
	message := &models.DirectMessage{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Body:        gofakeit.HipsterSentence(10),
		CreatedAt:   f.spreadCreatedAt(),
	}
	for _, override := range overrides {
		override(message)
	}

	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}
