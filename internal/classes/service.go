package classes

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"typetutor/internal/db"
)

// pq error code for unique_violation
const uniqueViolation = "23505"

type Service struct {
	DB *db.DB
}

func NewService(database *db.DB) *Service {
	return &Service{DB: database}
}

// Create makes a class with a fresh join code. Code collisions are rare but
// possible, so insertion retries on the unique constraint.
func (s *Service) Create(teacherID, name string) (*db.ClassRecord, error) {
	// Try up to 10 times to generate a unique code
	for range 10 {
		code, err := GenerateCode()
		if err != nil {
			return nil, fmt.Errorf("generating class code: %w", err)
		}
		class, err := s.DB.CreateClass(name, code, teacherID)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				continue
			}
			return nil, err
		}
		return class, nil
	}
	return nil, fmt.Errorf("failed to generate unique class code after 10 attempts")
}

// Join adds a user to the class behind a join code. Returns the class and
// whether the user is a new member.
func (s *Service) Join(code, userID string) (*db.ClassRecord, bool, error) {
	class, err := s.DB.GetClassByCode(code)
	if err != nil {
		return nil, false, err
	}
	joined, err := s.DB.AddClassMember(class.ID, userID)
	if err != nil {
		return nil, false, err
	}
	return class, joined, nil
}

// Roster returns the members of a class with their current rollups. Only the
// owning teacher may read it.
func (s *Service) Roster(classID, requesterID string) ([]db.RosterEntry, error) {
	class, err := s.DB.GetClass(classID)
	if err != nil {
		return nil, err
	}
	if class.TeacherID != requesterID {
		return nil, ErrNotClassTeacher
	}
	return s.DB.GetClassRoster(classID)
}

var ErrNotClassTeacher = errors.New("only the class teacher can view the roster")
