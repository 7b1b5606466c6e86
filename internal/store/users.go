package store

import (
	"errors"
	"fmt"
	"strings"

	"pharmapos/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserInput is the user management form payload. Password is optional
// on update: leaving it blank keeps the current one.
type UserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (in UserInput) validate(requirePassword bool) error {
	verr := NewValidationError()

	if strings.TrimSpace(in.Username) == "" {
		verr.Add("username", "Username is required")
	}
	if requirePassword && in.Password == "" {
		verr.Add("password", "Password is required")
	}
	if strings.TrimSpace(in.FullName) == "" {
		verr.Add("full_name", "Full name is required")
	}
	if in.Role != models.RoleAdmin && in.Role != models.RoleCashier {
		verr.Add("role", "Role must be Admin or Cashier")
	}

	if !verr.Empty() {
		return verr
	}
	return nil
}

// Authenticate matches a login attempt against the stored users.
// Both an unknown username and a wrong password report the same
// ErrInvalidCredentials, so the login form cannot be used to probe
// which usernames exist.
func Authenticate(db *gorm.DB, username, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// ListUsers returns every user. Password hashes never serialize.
func ListUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CreateUser hashes the password and inserts a new user. Usernames
// are unique across the whole collection.
func CreateUser(db *gorm.DB, in UserInput) (*models.User, error) {
	if err := in.validate(true); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(in.Username)
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Role:         in.Role,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// UpdateUser edits credentials, role or display name. The password is
// only re-hashed when a new one was submitted.
func UpdateUser(db *gorm.DB, id uint, in UserInput) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}

	if err := in.validate(false); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(in.Username)
	var count int64
	if err := db.Model(&models.User{}).
		Where("username = ? AND id <> ?", username, id).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	user.Username = username
	user.FullName = strings.TrimSpace(in.FullName)
	user.Role = in.Role
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return &user, nil
}

// DeleteUser removes a user, refusing to delete the last one so the
// system can never lock everyone out.
func DeleteUser(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if count <= 1 {
			return ErrLastUserDeletion
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete user %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}
