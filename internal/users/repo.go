package users

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
)

// Repository encapsulates user, role and profile persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a user repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a user by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail loads a user by lowercased email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateTx inserts a user inside the caller's transaction.
func (r *Repository) CreateTx(tx *gorm.DB, user *models.User) error {
	return tx.Create(user).Error
}

// GrantRoleTx attaches a role inside the caller's transaction. Re-granting
// an existing role is a no-op.
func (r *Repository) GrantRoleTx(tx *gorm.DB, userID uuid.UUID, role enums.AppRole) error {
	return tx.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserRole{UserID: userID, Role: role}).
		Error
}

// ListRoles returns every role held by the user.
func (r *Repository) ListRoles(ctx context.Context, userID uuid.UUID) ([]enums.AppRole, error) {
	var rows []models.UserRole
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	roles := make([]enums.AppRole, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, row.Role)
	}
	return roles, nil
}

// HasRole reports whether the user holds the role.
func (r *Repository) HasRole(ctx context.Context, userID uuid.UUID, role enums.AppRole) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindProfile loads the user's profile.
func (r *Repository) FindProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile inserts the profile or replaces its editable fields.
func (r *Repository) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "email", "phone", "address", "updated_at"}),
		}).
		Create(profile).
		Error
}
