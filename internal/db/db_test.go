package db

import (
	"os"
	"testing"
	"time"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}
	database, err := Connect(dsn)
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}
	t.Cleanup(func() {
		// Clean up test data
		database.conn.Exec("DELETE FROM class_members")
		database.conn.Exec("DELETE FROM classes")
		database.conn.Exec("DELETE FROM user_badges")
		database.conn.Exec("DELETE FROM user_stats")
		database.conn.Exec("DELETE FROM practice_attempts")
		database.conn.Exec("DELETE FROM users")
		database.Close()
	})
	return database
}

func createTestUser(t *testing.T, database *DB, email string) string {
	t.Helper()
	id, err := database.CreateUser(email, "Test User", "not-a-real-hash", RoleStudent)
	if err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	return id
}

func firstLessonID(t *testing.T, database *DB) string {
	t.Helper()
	lessons, err := database.ListLessons()
	if err != nil {
		t.Fatalf("ListLessons() error: %v", err)
	}
	if len(lessons) == 0 {
		t.Fatal("no seeded lessons found")
	}
	return lessons[0].ID
}

func TestConnect(t *testing.T) {
	database := getTestDB(t)
	if err := database.Ping(); err != nil {
		t.Errorf("Ping() error: %v", err)
	}
}

func TestMigrate(t *testing.T) {
	database := getTestDB(t)

	// Verify tables exist by querying them
	tables := []string{"users", "lessons", "practice_attempts", "user_stats", "user_badges", "classes", "class_members"}
	for _, table := range tables {
		var exists bool
		err := database.conn.QueryRow(`
			SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = $1)
		`, table).Scan(&exists)
		if err != nil {
			t.Errorf("checking table %s: %v", table, err)
		}
		if !exists {
			t.Errorf("table %s does not exist", table)
		}
	}
}

func TestCreateAndGetUser(t *testing.T) {
	database := getTestDB(t)

	id := createTestUser(t, database, "alice@example.com")

	u, err := database.GetUser(id)
	if err != nil {
		t.Fatalf("GetUser() error: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("email = %q, want %q", u.Email, "alice@example.com")
	}
	if u.Role != RoleStudent {
		t.Errorf("role = %q, want %q", u.Role, RoleStudent)
	}

	byEmail, err := database.GetUserByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error: %v", err)
	}
	if byEmail.ID != id {
		t.Errorf("id = %q, want %q", byEmail.ID, id)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	database := getTestDB(t)

	createTestUser(t, database, "dupe@example.com")
	if _, err := database.CreateUser("dupe@example.com", "Other", "hash", RoleStudent); err == nil {
		t.Error("CreateUser() should fail on duplicate email")
	}
}

func TestRecordAndListAttempts(t *testing.T) {
	database := getTestDB(t)

	userID := createTestUser(t, database, "attempts@example.com")
	lessonID := firstLessonID(t, database)

	id, err := database.RecordAttempt(PracticeAttempt{
		UserID:     &userID,
		LessonID:   lessonID,
		WPM:        42.5,
		Accuracy:   91.2,
		Completed:  true,
		OccurredAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("RecordAttempt() error: %v", err)
	}
	if id == "" {
		t.Fatal("RecordAttempt() returned empty id")
	}

	attempts, err := database.ListUserAttempts(userID, 10)
	if err != nil {
		t.Fatalf("ListUserAttempts() error: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("len(attempts) = %d, want 1", len(attempts))
	}
	if attempts[0].WPM != 42.5 {
		t.Errorf("wpm = %f, want 42.5", attempts[0].WPM)
	}
}

func TestBatchRecordAttempts(t *testing.T) {
	database := getTestDB(t)

	lessonID := firstLessonID(t, database)
	batch := []PracticeAttempt{
		{LessonID: lessonID, WPM: 30, Accuracy: 80, Completed: true, IsAnonymous: true, OccurredAt: time.Now()},
		{LessonID: lessonID, WPM: 35, Accuracy: 85, Completed: false, IsAnonymous: true, OccurredAt: time.Now()},
	}
	if err := database.BatchRecordAttempts(batch); err != nil {
		t.Fatalf("BatchRecordAttempts() error: %v", err)
	}

	var count int
	if err := database.conn.QueryRow(`SELECT COUNT(*) FROM practice_attempts WHERE is_anonymous`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("anonymous attempts = %d, want 2", count)
	}
}

func TestUpsertUserStats(t *testing.T) {
	database := getTestDB(t)

	userID := createTestUser(t, database, "stats@example.com")

	stats := UserStatsRecord{
		UserID: userID, AverageWPM: 40, AverageAccuracy: 88,
		LessonsCompleted: 5, LessonsAbove80: 5, LessonsAbove85: 3,
		CurrentBadgeLevel: 2,
	}
	if err := database.UpsertUserStats(stats); err != nil {
		t.Fatalf("UpsertUserStats() error: %v", err)
	}

	// Upsert again with new values — the row is replaced, not duplicated.
	stats.AverageWPM = 45
	stats.CurrentBadgeLevel = 3
	if err := database.UpsertUserStats(stats); err != nil {
		t.Fatalf("UpsertUserStats() update error: %v", err)
	}

	got, err := database.GetUserStats(userID)
	if err != nil {
		t.Fatalf("GetUserStats() error: %v", err)
	}
	if got.AverageWPM != 45 {
		t.Errorf("average_wpm = %f, want 45", got.AverageWPM)
	}
	if got.CurrentBadgeLevel != 3 {
		t.Errorf("current_badge_level = %d, want 3", got.CurrentBadgeLevel)
	}
}

func TestGetUserStats_MissingRowIsZero(t *testing.T) {
	database := getTestDB(t)

	userID := createTestUser(t, database, "nostats@example.com")

	got, err := database.GetUserStats(userID)
	if err != nil {
		t.Fatalf("GetUserStats() error: %v", err)
	}
	if got.AverageWPM != 0 || got.LessonsCompleted != 0 || got.CurrentBadgeLevel != 0 {
		t.Errorf("missing stats row should read as zeros, got %+v", got)
	}
}

func TestAwardBadge_InsertOrIgnore(t *testing.T) {
	database := getTestDB(t)

	userID := createTestUser(t, database, "badges@example.com")

	awarded, err := database.AwardBadge(userID, 3)
	if err != nil {
		t.Fatalf("AwardBadge() error: %v", err)
	}
	if !awarded {
		t.Fatal("first AwardBadge() should report a new row")
	}

	first, err := database.GetBadgeEarnedAt(userID, 3)
	if err != nil || first == nil {
		t.Fatalf("GetBadgeEarnedAt() = %v, %v", first, err)
	}

	// Repeat awards are no-ops and never move earned_at.
	for i := 0; i < 3; i++ {
		awarded, err = database.AwardBadge(userID, 3)
		if err != nil {
			t.Fatalf("repeat AwardBadge() error: %v", err)
		}
		if awarded {
			t.Error("repeat AwardBadge() should not report a new row")
		}
	}

	again, err := database.GetBadgeEarnedAt(userID, 3)
	if err != nil || again == nil {
		t.Fatalf("GetBadgeEarnedAt() = %v, %v", again, err)
	}
	if !again.Equal(*first) {
		t.Errorf("earned_at changed from %v to %v", first, again)
	}

	badges, err := database.GetUserBadges(userID)
	if err != nil {
		t.Fatalf("GetUserBadges() error: %v", err)
	}
	if len(badges) != 1 {
		t.Errorf("len(badges) = %d, want 1", len(badges))
	}
}

func TestGetBadgeEarnedAt_NeverEarned(t *testing.T) {
	database := getTestDB(t)

	userID := createTestUser(t, database, "unearned@example.com")
	earnedAt, err := database.GetBadgeEarnedAt(userID, 5)
	if err != nil {
		t.Fatalf("GetBadgeEarnedAt() error: %v", err)
	}
	if earnedAt != nil {
		t.Errorf("earnedAt = %v, want nil", earnedAt)
	}
}

func TestClassesAndRoster(t *testing.T) {
	database := getTestDB(t)

	teacherID, err := database.CreateUser("teacher@example.com", "Ms. Keys", "hash", RoleTeacher)
	if err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	studentID := createTestUser(t, database, "student@example.com")

	class, err := database.CreateClass("Period 3", "ABC234", teacherID)
	if err != nil {
		t.Fatalf("CreateClass() error: %v", err)
	}

	byCode, err := database.GetClassByCode("ABC234")
	if err != nil {
		t.Fatalf("GetClassByCode() error: %v", err)
	}
	if byCode.ID != class.ID {
		t.Errorf("class id = %q, want %q", byCode.ID, class.ID)
	}

	added, err := database.AddClassMember(class.ID, studentID)
	if err != nil || !added {
		t.Fatalf("AddClassMember() = %v, %v", added, err)
	}
	// Joining twice is a no-op.
	added, err = database.AddClassMember(class.ID, studentID)
	if err != nil {
		t.Fatalf("repeat AddClassMember() error: %v", err)
	}
	if added {
		t.Error("repeat AddClassMember() should not report a new row")
	}

	roster, err := database.GetClassRoster(class.ID)
	if err != nil {
		t.Fatalf("GetClassRoster() error: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("len(roster) = %d, want 1", len(roster))
	}
	if roster[0].UserID != studentID {
		t.Errorf("roster member = %q, want %q", roster[0].UserID, studentID)
	}
	// Student has no stats row yet; roster shows zeros.
	if roster[0].AverageWPM != 0 || roster[0].BadgeLevel != 0 {
		t.Errorf("expected zero stats for new member, got %+v", roster[0])
	}
}
