package services

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"time-tracker-api/config"
	"time-tracker-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sendMailFunc is swapped out in tests.
var sendMailFunc = config.SendMail

// UserService serves the user directory and the bulk roster import.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ImportSummary reports the outcome of one roster upload.
type ImportSummary struct {
	BatchID  string `json:"batch_id"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// ByNetID resolves a NetID to its user row, ErrNotFound when absent.
func (s *UserService) ByNetID(netID string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("net_id = ?", netID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// All returns every user, ordered by NetID.
func (s *UserService) All() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("net_id ASC").Find(&users).Error
	return users, err
}

// ByGroup returns the users assigned to one group.
func (s *UserService) ByGroup(group int) ([]models.User, error) {
	var users []models.User
	err := s.db.Where("group_id = ?", group).Order("net_id ASC").Find(&users).Error
	return users, err
}

// GroupMap returns every assigned group with its members. Ungrouped users
// (group 0) are excluded.
func (s *UserService) GroupMap() (map[int][]models.User, error) {
	var users []models.User
	if err := s.db.Where("group_id <> 0").Order("net_id ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	groups := make(map[int][]models.User)
	for _, user := range users {
		groups[user.Group] = append(groups[user.Group], user)
	}
	return groups, nil
}

// UpdateGroup reassigns a user's group; group 0 clears membership.
func (s *UserService) UpdateGroup(netID string, group int) error {
	result := s.db.Model(&models.User{}).
		Where("net_id = ?", netID).
		Update("group_id", group)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ImportFromReader ingests a tab-separated roster export with a header line
// and columns LastName, FirstName, NetID, StudentID. Each new account gets
// the digest of its student id as a default password that must be changed on
// first login. Malformed lines and already-registered NetIDs are skipped; a
// file that yields no new accounts is an error. The whole batch is inserted
// in one transaction and recorded as a UserImportRun.
func (s *UserService) ImportFromReader(r io.Reader, fileName string) (*ImportSummary, error) {
	users := make([]models.User, 0)
	seen := make(map[string]bool)
	skipped := 0

	scanner := bufio.NewScanner(r)
	firstLine := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if firstLine {
			firstLine = false
			continue
		}
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 4 {
			skipped++
			continue
		}

		lastName := strings.TrimSpace(fields[0])
		firstName := strings.TrimSpace(fields[1])
		netID := strings.TrimSpace(fields[2])
		studentID := strings.TrimSpace(fields[3])
		if netID == "" || studentID == "" || seen[netID] {
			skipped++
			continue
		}
		seen[netID] = true

		var count int64
		if err := s.db.Model(&models.User{}).Where("net_id = ?", netID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			skipped++
			continue
		}

		users = append(users, models.User{
			NetID:             netID,
			Password:          HashPassword(studentID),
			IsDefaultPassword: true,
			Role:              models.RoleStudent,
			FirstName:         firstName,
			LastName:          lastName,
			CreatedAt:         time.Now(),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, validationErrorf("no valid users to import")
	}

	run := models.UserImportRun{
		BatchID:   uuid.NewString(),
		FileName:  fileName,
		Imported:  len(users),
		Skipped:   skipped,
		CreatedAt: time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&users).Error; err != nil {
			return err
		}
		return tx.Create(&run).Error
	})
	if err != nil {
		return nil, err
	}

	s.sendWelcomeMail(users)

	return &ImportSummary{
		BatchID:  run.BatchID,
		Imported: run.Imported,
		Skipped:  run.Skipped,
	}, nil
}

// sendWelcomeMail notifies imported students at <netid>@MAIL_NETID_DOMAIN.
// Skipped entirely when no mail domain is configured; a delivery failure is
// logged and does not fail the import.
func (s *UserService) sendWelcomeMail(users []models.User) {
	domain := os.Getenv("MAIL_NETID_DOMAIN")
	if domain == "" {
		return
	}

	for _, user := range users {
		address := fmt.Sprintf("%s@%s", user.NetID, domain)
		body := fmt.Sprintf(
			"<p>Hello %s,</p><p>A time tracker account was created for NetID <b>%s</b>. "+
				"Sign in with your student ID as the password and change it on first login.</p>",
			user.FirstName, user.NetID)
		if err := sendMailFunc([]string{address}, "Your time tracker account", body); err != nil {
			log.Printf("Warning: welcome mail to %s failed: %v", address, err)
		}
	}
}
