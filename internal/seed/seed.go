// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"steamfinder/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	ShouldClean bool
}

var gameNames = []string{
	"Counter-Strike 2", "Dota 2", "Apex Legends", "Rocket League",
	"Team Fortress 2", "Rust", "Valheim", "Deep Rock Galactic",
	"Stardew Valley", "Terraria", "Hades", "Factorio",
	"Baldur's Gate 3", "Helldivers 2", "Path of Exile",
}

var groupNames = []string{
	"Night Raiders", "Casual Sundays", "EU Ranked Grind", "Co-op Corner",
	"Speedrun Society", "The Salt Mines", "Iron Fist Clan", "Low Ping Lobby",
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users...", opts.NumUsers)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	games, err := createGames(db)
	if err != nil {
		return fmt.Errorf("failed to create games: %w", err)
	}
	if err := attachGames(db, users, games); err != nil {
		return fmt.Errorf("failed to attach games: %w", err)
	}

	if err := createFriendships(db, users); err != nil {
		return fmt.Errorf("failed to create friendships: %w", err)
	}
	if err := createGroups(db, users); err != nil {
		return fmt.Errorf("failed to create groups: %w", err)
	}
	if err := createTournaments(db, users, games); err != nil {
		return fmt.Errorf("failed to create tournaments: %w", err)
	}
	if err := createMessages(db, users); err != nil {
		return fmt.Errorf("failed to create messages: %w", err)
	}
	if err := createStats(db, users); err != nil {
		return fmt.Errorf("failed to create stats: %w", err)
	}
	if err := createEvents(db, users); err != nil {
		return fmt.Errorf("failed to create events: %w", err)
	}
	if err := createReviews(db, users); err != nil {
		return fmt.Errorf("failed to create reviews: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	tables := []string{
		"achievements", "reviews", "event_participants", "events",
		"user_stats", "tournament_participants", "tournaments",
		"group_memberships", "groups", "messages", "friendships",
		"user_games", "games", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!x"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		user := models.User{
			Username:   fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:      gofakeit.Email(),
			Password:   string(hashed),
			Bio:        gofakeit.Sentence(10),
			Avatar:     fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			SkillLevel: gofakeit.Number(1, 10),
		}
		// Roughly half the users arrive with a linked Steam profile.
		if gofakeit.Bool() {
			steamID := fmt.Sprintf("7656119%09d", gofakeit.Number(0, 999999999))
			user.SteamID = &steamID
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createGames(db *gorm.DB) ([]models.Game, error) {
	games := make([]models.Game, 0, len(gameNames))
	for _, name := range gameNames {
		game := models.Game{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&game).Error; err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}

func attachGames(db *gorm.DB, users []models.User, games []models.Game) error {
	for i := range users {
		count := gofakeit.Number(1, 5)
		picked := rand.Perm(len(games))[:count]
		for _, idx := range picked {
			if err := db.Model(&users[i]).Association("Games").Append(&games[idx]); err != nil {
				return err
			}
		}
	}
	return nil
}

func createFriendships(db *gorm.DB, users []models.User) error {
	if len(users) < 2 {
		return nil
	}
	edges := len(users) * 2
	seen := map[[2]uint]bool{}
	for i := 0; i < edges; i++ {
		a := users[rand.Intn(len(users))].ID
		b := users[rand.Intn(len(users))].ID
		if a == b {
			continue
		}
		key := [2]uint{min(a, b), max(a, b)}
		if seen[key] {
			continue
		}
		seen[key] = true

		status := models.FriendshipStatusAccepted
		if gofakeit.Number(0, 3) == 0 {
			status = models.FriendshipStatusPending
		}
		friendship := models.Friendship{RequesterID: a, AddresseeID: b, Status: status}
		if err := db.Create(&friendship).Error; err != nil {
			return err
		}
	}
	return nil
}

func createGroups(db *gorm.DB, users []models.User) error {
	for _, name := range groupNames {
		owner := users[rand.Intn(len(users))]
		group := models.Group{
			Name:          name,
			Description:   gofakeit.Sentence(8),
			IsPrivate:     gofakeit.Number(0, 3) == 0,
			MaxMembers:    gofakeit.Number(8, 50),
			MinSkillLevel: gofakeit.Number(1, 5),
			OwnerID:       owner.ID,
		}
		if err := db.Create(&group).Error; err != nil {
			return err
		}
		memberships := []models.GroupMembership{{GroupID: group.ID, UserID: owner.ID, Role: models.GroupRoleOwner}}
		for _, u := range users {
			if u.ID == owner.ID || len(memberships) >= group.MaxMembers {
				continue
			}
			if u.SkillLevel >= group.MinSkillLevel && gofakeit.Number(0, 3) == 0 {
				memberships = append(memberships, models.GroupMembership{
					GroupID: group.ID, UserID: u.ID, Role: models.GroupRoleMember,
				})
			}
		}
		if err := db.Create(&memberships).Error; err != nil {
			return err
		}
	}
	return nil
}

func createTournaments(db *gorm.DB, users []models.User, games []models.Game) error {
	now := time.Now().UTC()
	windows := []struct {
		start time.Duration
		end   time.Duration
	}{
		{-72 * time.Hour, -48 * time.Hour}, // completed
		{-2 * time.Hour, 4 * time.Hour},    // active
		{48 * time.Hour, 54 * time.Hour},   // upcoming
	}

	for i, w := range windows {
		game := games[rand.Intn(len(games))]
		tournament := models.Tournament{
			Name:       fmt.Sprintf("%s Cup #%d", game.Name, i+1),
			GameID:     &game.ID,
			StartTime:  now.Add(w.start),
			EndTime:    now.Add(w.end),
			MaxPlayers: 16,
		}
		tournament.Status = models.DeriveTournamentStatus(&tournament, now)
		if err := db.Create(&tournament).Error; err != nil {
			return err
		}

		entrants := rand.Perm(len(users))
		if len(entrants) > 8 {
			entrants = entrants[:8]
		}
		for _, idx := range entrants {
			participant := models.TournamentParticipant{
				TournamentID: tournament.ID,
				UserID:       users[idx].ID,
			}
			if err := db.Create(&participant).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func createMessages(db *gorm.DB, users []models.User) error {
	if len(users) < 2 {
		return nil
	}
	count := len(users) * 3
	for i := 0; i < count; i++ {
		sender := users[rand.Intn(len(users))]
		recipient := users[rand.Intn(len(users))]
		if sender.ID == recipient.ID {
			continue
		}
		message := models.Message{
			SenderID:    sender.ID,
			RecipientID: recipient.ID,
			Body:        gofakeit.Sentence(gofakeit.Number(3, 15)),
			IsRead:      gofakeit.Bool(),
		}
		if err := db.Create(&message).Error; err != nil {
			return err
		}
	}
	return nil
}

func createEvents(db *gorm.DB, users []models.User) error {
	names := []string{"Community LAN Night", "Charity Speedrun Marathon", "Regional Qualifier Watch Party"}
	for i, name := range names {
		event := models.Event{
			Name:        name,
			Description: gofakeit.Sentence(10),
			Location:    gofakeit.City(),
			StartTime:   time.Now().UTC().Add(time.Duration(24*(i+1)) * time.Hour),
		}
		if err := db.Create(&event).Error; err != nil {
			return err
		}
		attendees := rand.Perm(len(users))
		if len(attendees) > 10 {
			attendees = attendees[:10]
		}
		for _, idx := range attendees {
			participant := models.EventParticipant{EventID: event.ID, UserID: users[idx].ID}
			if err := db.Create(&participant).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func createReviews(db *gorm.DB, users []models.User) error {
	if len(users) < 2 {
		return nil
	}
	count := len(users)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		subject := users[rand.Intn(len(users))]
		if author.ID == subject.ID {
			continue
		}
		review := models.Review{
			AuthorID:  author.ID,
			SubjectID: subject.ID,
			Rating:    gofakeit.Number(1, 5),
			Body:      gofakeit.Sentence(8),
		}
		if err := db.Create(&review).Error; err != nil {
			return err
		}
	}
	return nil
}

func createStats(db *gorm.DB, users []models.User) error {
	for _, u := range users {
		stats := models.UserStats{
			UserID:      u.ID,
			HoursPlayed: gofakeit.Number(0, 4000),
			MatchesWon:  gofakeit.Number(0, 500),
			MatchesLost: gofakeit.Number(0, 500),
			RefreshedAt: time.Now().UTC(),
		}
		if err := db.Create(&stats).Error; err != nil {
			return err
		}
	}
	return nil
}
