package seed

import (
	"fmt"
	"log"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with realistic social-graph test data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Order matters for foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{
		&models.Like{},
		&models.Comment{},
		&models.Story{},
		&models.Post{},
		&models.FollowRequest{},
		&models.Follower{},
		&models.Block{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", table, err)
		}
	}
	log.Println("✓ Database cleared")
	return nil
}

// Seed populates users, the follow graph, posts, likes, comments and
// stories according to opts.
func (s *Seeder) Seed(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	if err := s.createFollowGraph(users); err != nil {
		return fmt.Errorf("failed to create follow graph: %w", err)
	}
	log.Println("✓ Follow graph created")

	posts, err := s.createPosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := s.createEngagement(users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Println("✓ Likes and comments created")

	if err := s.createStories(users); err != nil {
		return fmt.Errorf("failed to create stories: %w", err)
	}
	log.Println("✓ Stories created")

	return nil
}

func (s *Seeder) createUsers(n int) ([]*models.User, error) {
	if n <= 0 {
		n = 25
	}
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// createFollowGraph links each user to a handful of others: mostly
// established follows, plus some pending requests and a few blocks so
// every relationship state is represented.
func (s *Seeder) createFollowGraph(users []*models.User) error {
	r := s.factory.r
	for _, user := range users {
		targets := r.Perm(len(users))
		links := r.Intn(6) + 2
		for _, ti := range targets {
			if links == 0 {
				break
			}
			target := users[ti]
			if target.ID == user.ID {
				continue
			}
			links--

			switch r.Intn(10) {
			case 0:
				if err := s.db.Create(&models.Block{BlockerID: user.ID, BlockedID: target.ID}).Error; err != nil {
					return err
				}
			case 1, 2:
				if err := s.db.Create(&models.FollowRequest{SenderID: user.ID, ReceiverID: target.ID}).Error; err != nil {
					return err
				}
			default:
				if err := s.db.Create(&models.Follower{FollowerID: user.ID, FollowingID: target.ID}).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *Seeder) createPosts(users []*models.User, n int) ([]*models.Post, error) {
	if n <= 0 {
		n = 100
	}
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.factory.r.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(author, 30))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Seeder) createEngagement(users []*models.User, posts []*models.Post) error {
	r := s.factory.r
	for _, post := range posts {
		likers := r.Perm(len(users))
		for _, li := range likers[:r.Intn(len(users)/2+1)] {
			like := &models.Like{UserID: users[li].ID, PostID: post.ID}
			if err := s.db.Create(like).Error; err != nil {
				return err
			}
		}

		for i := 0; i < r.Intn(4); i++ {
			commenter := users[r.Intn(len(users))]
			if err := s.db.Create(s.factory.BuildComment(commenter, post)).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// createStories gives roughly a third of users an active story. One per
// user, matching the replace-on-post semantics of the API.
func (s *Seeder) createStories(users []*models.User) error {
	r := s.factory.r
	for _, user := range users {
		if r.Intn(3) != 0 {
			continue
		}
		if err := s.db.Create(s.factory.BuildStory(user)).Error; err != nil {
			return err
		}
	}
	return nil
}
