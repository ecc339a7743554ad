// Package seed provides helpers to create demo data for development and
// testing. Not for production use.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"twosides/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures how much data the seeder creates.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// SkipBcrypt stores a plaintext marker password instead of a hash,
	// which speeds up large seeds in development.
	SkipBcrypt bool
}

// debateTopics pairs a topic with its two side labels.
var debateTopics = []struct {
	Title string
	Topic string
	Blue  string
	Red   string
}{
	{"Tabs or spaces?", "Programming", "Tabs", "Spaces"},
	{"Cats or dogs?", "Pets", "Cats", "Dogs"},
	{"Is a hot dog a sandwich?", "Food", "Yes", "No"},
	{"Morning person or night owl?", "Lifestyle", "Morning", "Night"},
	{"Books or movies?", "Entertainment", "Books", "Movies"},
	{"Mountains or beaches?", "Travel", "Mountains", "Beaches"},
	{"Coffee or tea?", "Food", "Coffee", "Tea"},
	{"Remote work or office?", "Work", "Remote", "Office"},
	{"Android or iOS?", "Technology", "Android", "iOS"},
	{"Pineapple on pizza?", "Food", "Absolutely", "Never"},
}

// Seeder creates demo records.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewSeeder creates a Seeder bound to the given database.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run populates the database with users, posts, votes, comments and
// connections.
func (s *Seeder) Run() error {
	if s.opts.ShouldClean {
		if err := s.clean(); err != nil {
			return fmt.Errorf("cleaning tables: %w", err)
		}
	}

	users, err := s.createUsers(s.opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}
	log.Printf("seeded %d users", len(users))

	posts, err := s.createPosts(users, s.opts.NumPosts)
	if err != nil {
		return fmt.Errorf("seeding posts: %w", err)
	}
	log.Printf("seeded %d posts", len(posts))

	if err := s.createVotes(users, posts); err != nil {
		return fmt.Errorf("seeding votes: %w", err)
	}
	if err := s.createComments(users, posts); err != nil {
		return fmt.Errorf("seeding comments: %w", err)
	}
	if err := s.createConnections(users); err != nil {
		return fmt.Errorf("seeding connections: %w", err)
	}
	return nil
}

func (s *Seeder) clean() error {
	return s.db.Exec(
		"TRUNCATE TABLE comment_likes, comments, votes, posts, connections, connection_requests, users CASCADE",
	).Error
}

// CreateUser builds and persists one fake user. Overrides run before saving.
func (s *Seeder) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		UID:           uuid.NewString(),
		PreferredName: gofakeit.FirstName() + " " + gofakeit.LastName(),
		Email:         gofakeit.Email(),
		Bio:           gofakeit.Sentence(10),
	}

	if s.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hash)
	}

	for _, override := range overrides {
		override(user)
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Seeder) createUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// CreatePost builds and persists one debate post by a random author.
func (s *Seeder) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	topic := debateTopics[s.rng.Intn(len(debateTopics))]
	post := &models.Post{
		AuthorUID: author.UID,
		Title:     topic.Title,
		Topic:     topic.Topic,
		BlueSide:  topic.Blue,
		RedSide:   topic.Red,
		IsGlobal:  s.rng.Intn(4) > 0,
		CreatedAt: gofakeit.DateRange(time.Now().AddDate(0, -3, 0), time.Now()),
	}

	for _, override := range overrides {
		override(post)
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Seeder) createPosts(users []*models.User, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]
		post, err := s.CreatePost(author)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// createVotes lets a random subset of users vote on each post, keeping the
// tally columns in sync with the vote rows.
func (s *Seeder) createVotes(users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		blue, red := 0, 0
		for _, user := range users {
			if s.rng.Intn(3) != 0 {
				continue
			}
			color := models.ColorBlue
			if s.rng.Intn(2) == 0 {
				color = models.ColorRed
			}
			vote := &models.Vote{PostID: post.ID, VoterUID: user.UID, Color: color}
			if err := s.db.Create(vote).Error; err != nil {
				return err
			}
			if color == models.ColorBlue {
				blue++
			} else {
				red++
			}
		}
		err := s.db.Model(post).UpdateColumns(map[string]interface{}{
			"blue_count": blue,
			"red_count":  red,
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// createComments adds a short thread to each post, occasionally nesting
// replies, and leaves a few posts locked at the comment threshold.
func (s *Seeder) createComments(users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		n := s.rng.Intn(models.LockThreshold + 1)
		var prev *models.Comment
		for i := 0; i < n; i++ {
			author := users[s.rng.Intn(len(users))]
			comment := &models.Comment{
				PostID:    post.ID,
				AuthorUID: author.UID,
				Text:      gofakeit.Sentence(12),
			}
			// Roughly a third of comments reply to the previous one.
			if prev != nil && s.rng.Intn(3) == 0 {
				comment.ParentID = prev.ID
			}
			if err := s.db.Create(comment).Error; err != nil {
				return err
			}
			prev = comment
		}
		err := s.db.Model(post).UpdateColumns(map[string]interface{}{
			"comment_count": n,
			"locked":        n >= models.LockThreshold,
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// createConnections links random user pairs and leaves some pending requests.
func (s *Seeder) createConnections(users []*models.User) error {
	for i := range users {
		for j := i + 1; j < len(users); j++ {
			switch s.rng.Intn(6) {
			case 0:
				u1, u2 := models.NormalizePair(users[i].UID, users[j].UID)
				conn := &models.Connection{User1UID: u1, User2UID: u2}
				if err := s.db.Create(conn).Error; err != nil {
					return err
				}
			case 1:
				req := &models.ConnectionRequest{
					FromUID: users[i].UID,
					ToUID:   users[j].UID,
					Comment: gofakeit.Sentence(6),
				}
				if err := s.db.Create(req).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}
