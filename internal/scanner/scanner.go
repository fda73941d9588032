package scanner

import (
	"database/sql"

	model "github.com/MassBabyGeek/SnapQuest-backend/internal/models"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/utils"
)

// ScanChallenge scanne une ligne SQL vers un Challenge
// Colonnes attendues : id, name, description, subject, latitude, longitude,
// radius_km, start_date, end_date, status, rewards_granted, created_by,
// created_at, updated_at, deleted_at
func ScanChallenge(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Challenge, error) {
	var c model.Challenge
	var createdBy sql.NullString
	var deletedAt sql.NullTime

	err := scanner.Scan(
		&c.ID, &c.Name, &c.Description, &c.Subject,
		&c.Latitude, &c.Longitude, &c.RadiusKm,
		&c.StartDate, &c.EndDate, &c.Status, &c.RewardsGranted,
		&createdBy, &c.CreatedAt, &c.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedBy = utils.NullStringToString(createdBy)
	c.DeletedAt = utils.NullTimeToPointer(deletedAt)

	return &c, nil
}

// ScanSubmission scanne une ligne SQL vers une Submission
// Colonnes attendues : id, user_id, challenge_id, title, description,
// image_url, latitude, longitude, taken_at, score, created_at, updated_at,
// deleted_at, deleted_by
func ScanSubmission(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Submission, error) {
	var s model.Submission
	var imageURL sql.NullString
	var deletedAt sql.NullTime
	var deletedBy sql.NullString

	err := scanner.Scan(
		&s.ID, &s.UserID, &s.ChallengeID, &s.Title, &s.Description,
		&imageURL, &s.Latitude, &s.Longitude, &s.TakenAt, &s.Score,
		&s.CreatedAt, &s.UpdatedAt, &deletedAt, &deletedBy,
	)
	if err != nil {
		return nil, err
	}

	s.ImageURL = utils.NullStringToString(imageURL)
	s.DeletedAt = utils.NullTimeToPointer(deletedAt)
	s.DeletedBy = utils.NullStringToPointer(deletedBy)

	return &s, nil
}

// ScanUserProfile scanne une ligne SQL vers un UserProfile
// Colonnes attendues : id, name, email, avatar, is_admin, join_date,
// created_at, updated_at
func ScanUserProfile(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.UserProfile, error) {
	var user model.UserProfile
	var avatar sql.NullString

	err := scanner.Scan(
		&user.ID, &user.Name, &user.Email, &avatar,
		&user.IsAdmin, &user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Avatar = utils.NullStringToString(avatar)

	return &user, nil
}
