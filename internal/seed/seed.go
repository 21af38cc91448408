package seed

import (
	"fmt"
	"log"

	"qubeia/internal/authz"
	"qubeia/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumItems    int
	ShouldClean bool
	// MaxDays bounds how far back created_at timestamps are spread.
	MaxDays int
}

// staffRoles is the ladder used to sprinkle elevated accounts through the
// seed population. Roughly one in ten users gets a staff role.
var staffRoles = []models.Role{
	models.RoleHelper,
	models.RoleModerator,
	models.RoleAdmin,
	models.RoleDeveloper,
}

// roleFor assigns a role based on the user's index in the seed run. The
// first account is always an owner so there is someone who can manage
// roles out of the box.
func roleFor(i int) models.Role {
	if i == 0 {
		return models.RoleOwner
	}
	if i%10 == 5 {
		return staffRoles[(i/10)%len(staffRoles)]
	}
	return models.RoleUser
}

// Seed populates the database with a realistic community: users across the
// role ladder, items in every section, a few deleted ones, punishments with
// appeals in each state, and DM traffic.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d items...", opts.NumUsers, opts.NumItems)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)
	policy := authz.NewSectionPolicy()

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	items, err := createItems(factory, policy, users, opts.NumItems)
	if err != nil {
		return fmt.Errorf("failed to create items: %w", err)
	}
	log.Printf("%d items created", len(items))

	if err := createModerationHistory(factory, users); err != nil {
		return fmt.Errorf("failed to create moderation history: %w", err)
	}
	log.Println("moderation history created")

	if err := createDirectMessages(factory, users); err != nil {
		return fmt.Errorf("failed to create direct messages: %w", err)
	}
	log.Println("direct messages created")

	log.Println("Database seeding completed successfully")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE appeals, punishments, direct_messages, content_items, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	if count <= 0 {
		count = 25
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		role := roleFor(i)
		user, err := factory.CreateUser(func(u *models.User) {
			u.Role = role
		})
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createItems(factory *Factory, policy *authz.SectionPolicy, users []*models.User, count int) ([]*models.ContentItem, error) {
	if count <= 0 {
		count = 100
	}

	sections := policy.Sections()
	reportStatuses := []models.ReportStatus{
		models.ReportStatusPending,
		models.ReportStatusFixed,
		models.ReportStatusInvalid,
	}

	var moderator *models.User
	for _, u := range users {
		if authz.RankAtLeast(u.Role, models.RoleModerator) {
			moderator = u
			break
		}
	}

	items := make([]*models.ContentItem, 0, count)
	for i := 0; i < count; i++ {
		section := sections[i%len(sections)]
		author := users[factory.rng.Intn(len(users))]

		item, err := factory.CreateContentItem(author, section.Name, func(it *models.ContentItem) {
			if policy.UsesReportStatus(section.Name) {
				it.ReportStatus = reportStatuses[factory.rng.Intn(len(reportStatuses))]
			}
			// roughly one in twelve items is soft-deleted
			if moderator != nil && factory.rng.Intn(12) == 0 {
				it.Status = models.ContentStatusDeleted
				it.DeletedBy = &moderator.ID
			}
		})
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		// keep the author's counter roughly honest
		if err := factory.db.Model(&models.User{}).Where("id = ?", author.ID).
			Update("posts_count", gorm.Expr("posts_count + 1")).Error; err != nil {
			return nil, err
		}
	}
	return items, nil
}

func createModerationHistory(factory *Factory, users []*models.User) error {
	var moderator *models.User
	for _, u := range users {
		if authz.RankAtLeast(u.Role, models.RoleModerator) {
			moderator = u
			break
		}
	}
	if moderator == nil || len(users) < 4 {
		return nil
	}

	decisions := []models.AppealDecision{
		models.AppealPending,
		models.AppealApproved,
		models.AppealRejected,
	}

	n := len(users) / 5
	if n < 3 {
		n = 3
	}
	for i := 0; i < n; i++ {
		target := users[factory.rng.Intn(len(users))]
		if target.ID == moderator.ID {
			continue
		}
		punishment, err := factory.CreatePunishment(target, moderator.ID, 1+factory.rng.Intn(10))
		if err != nil {
			return err
		}
		// about half the punishments get appealed
		if factory.rng.Intn(2) == 0 {
			decision := decisions[factory.rng.Intn(len(decisions))]
			if _, err := factory.CreateAppeal(punishment, decision, &moderator.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func createDirectMessages(factory *Factory, users []*models.User) error {
	if len(users) < 2 {
		return nil
	}

	n := len(users) * 3
	for i := 0; i < n; i++ {
		sender := users[factory.rng.Intn(len(users))]
		recipient := users[factory.rng.Intn(len(users))]
		if sender.ID == recipient.ID {
			continue
		}
		if _, err := factory.CreateDirectMessage(sender, recipient); err != nil {
			return err
		}
		if err := factory.db.Model(&models.User{}).Where("id = ?", sender.ID).
			Update("messages_count", gorm.Expr("messages_count + 1")).Error; err != nil {
			return err
		}
	}
	return nil
}
