// Command seed fills a database with generated authors, posts and likes for local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/dfryer1193/blogfeed/blog/application"
	"github.com/dfryer1193/blogfeed/blog/domain"
	"github.com/dfryer1193/blogfeed/blog/persistence"
	"github.com/dfryer1193/blogfeed/shared/config"
	"github.com/dfryer1193/blogfeed/shared/db/sqlite"
	"github.com/dfryer1193/blogfeed/shared/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	authors := flag.Int("authors", 5, "number of authors to create")
	posts := flag.Int("posts", 40, "number of posts to create")
	maxLikes := flag.Int("max-likes", 12, "maximum likes per post")
	seed := flag.Uint64("seed", 0, "random seed, 0 picks one at random")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logging")
	}

	database := sqlite.NewSQLiteDB(sqlite.NewSQLiteConfig())
	if err := database.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	dbConn := database.DB()
	postRepo := persistence.NewPostRepository(dbConn)
	likeRepo := persistence.NewLikeRepository(dbConn)
	feed := application.NewFeedService(postRepo, likeRepo, application.NewMarkdownRenderer(), dbConn)

	s := &seeder{
		faker:    gofakeit.New(*seed),
		feed:     feed,
		posts:    postRepo,
		likes:    likeRepo,
		maxLikes: *maxLikes,
	}

	if err := s.run(context.Background(), *authors, *posts); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed database")
	}
}

type seeder struct {
	faker    *gofakeit.Faker
	feed     *application.FeedService
	posts    domain.PostRepository
	likes    domain.LikeRepository
	maxLikes int
}

func (s *seeder) run(ctx context.Context, authorCount, postCount int) error {
	if authorCount <= 0 {
		return fmt.Errorf("at least one author is required")
	}

	authors := make([]*domain.Author, 0, authorCount)
	for i := 0; i < authorCount; i++ {
		a := &domain.Author{
			Name:  s.faker.Name(),
			Image: fmt.Sprintf("https://i.pravatar.cc/96?u=%d", s.faker.Number(1, 1_000_000)),
		}
		if err := s.posts.UpsertAuthor(ctx, a); err != nil {
			return err
		}
		authors = append(authors, a)
	}

	now := time.Now().UTC()
	for i := 0; i < postCount; i++ {
		author := authors[s.faker.Number(0, len(authors)-1)]
		createdAt := now.Add(-time.Duration(s.faker.Number(1, 60*24*400)) * time.Minute)

		post, err := s.feed.Publish(ctx, author, []byte(s.markdown()), createdAt)
		if err != nil {
			return err
		}

		if s.faker.Number(1, 10) == 1 {
			if err := s.posts.SetHidden(ctx, post.ID, true); err != nil {
				return err
			}
		}

		for n := s.faker.Number(0, s.maxLikes); n > 0; n-- {
			liker := authors[s.faker.Number(0, len(authors)-1)]
			if err := s.likes.AddLike(ctx, liker.ID, post.ID); err != nil {
				return err
			}
		}
	}

	log.Info().Int("authors", authorCount).Int("posts", postCount).Msg("Seeded database")
	return nil
}

// markdown builds a post with a title and a random mix of the block types
// that summaries are drawn from.
func (s *seeder) markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", strings.TrimSuffix(s.faker.Sentence(s.faker.Number(3, 7)), "."))

	for blocks := s.faker.Number(1, 6); blocks > 0; blocks-- {
		switch s.faker.Number(0, 5) {
		case 0:
			fmt.Fprintf(&b, "### %s\n\n", strings.TrimSuffix(s.faker.Sentence(4), "."))
		case 1:
			for items := s.faker.Number(2, 5); items > 0; items-- {
				fmt.Fprintf(&b, "- %s\n", s.faker.Sentence(6))
			}
			b.WriteString("\n")
		case 2:
			fmt.Fprintf(&b, "```\n%s := %d\n```\n\n", s.faker.Word(), s.faker.Number(0, 100))
		case 3:
			fmt.Fprintf(&b, "![%s](./%s.png)\n\n", s.faker.Word(), s.faker.Word())
		default:
			for sentences := s.faker.Number(2, 5); sentences > 0; sentences-- {
				b.WriteString(s.faker.Sentence(s.faker.Number(6, 14)))
				b.WriteString(" ")
			}
			b.WriteString("\n\n")
		}
	}

	return b.String()
}
