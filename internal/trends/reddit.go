package trends

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vartanbeno/go-reddit/v2/reddit"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/textutil"
)

const (
	redditPostLimit = 50
	redditMinScore  = 100
)

// RedditSource pulls hot submissions from the configured fashion subreddits.
type RedditSource struct {
	client     *reddit.Client
	subreddits []string
}

type RedditCredentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

func NewRedditSource(creds RedditCredentials, subreddits []string) (*RedditSource, error) {
	client, err := reddit.NewClient(reddit.Credentials{
		ID:       creds.ClientID,
		Secret:   creds.ClientSecret,
		Username: creds.Username,
		Password: creds.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create reddit client: %w", err)
	}

	return &RedditSource{client: client, subreddits: subreddits}, nil
}

func (s *RedditSource) Name() string { return "reddit" }

func (s *RedditSource) Fetch(ctx context.Context) ([]model.TrendRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	posts, _, err := s.client.Subreddit.HotPosts(ctx, strings.Join(s.subreddits, "+"), &reddit.ListOptions{
		Limit: redditPostLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch hot posts: %w", err)
	}

	var records []model.TrendRecord
	for _, post := range posts {
		if post.Score < redditMinScore {
			continue
		}

		description := textutil.Truncate(post.Body, 500)

		detectedAt := time.Now()
		if post.Created != nil {
			detectedAt = post.Created.Time
		}

		records = append(records, model.TrendRecord{
			Source:      model.SourceReddit,
			Title:       post.Title,
			Description: description,
			Keywords:    ExtractKeywords(post.Title),
			Score:       post.Score,
			URL:         post.URL,
			DetectedAt:  detectedAt,
		})
	}

	return records, nil
}
